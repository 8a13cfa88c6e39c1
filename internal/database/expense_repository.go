package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/facturio/compta-service/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ExpenseRepository gère les opérations de base de données pour les dépenses
type ExpenseRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewExpenseRepository crée une nouvelle instance du repository
func NewExpenseRepository(db *DB, logger *logrus.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

const expenseColumns = `id, date, description, amount_ht, amount_tva, category,
	receipt_path, client_id, supplier_name, invoice_number, payment_method, type, created_at`

func scanExpense(row interface{ Scan(...interface{}) error }) (*models.Expense, error) {
	var expense models.Expense
	err := row.Scan(
		&expense.ID, &expense.Date, &expense.Description, &expense.AmountHT,
		&expense.AmountTVA, &expense.Category, &expense.ReceiptPath,
		&expense.ClientID, &expense.SupplierName, &expense.InvoiceNumber,
		&expense.PaymentMethod, &expense.Type, &expense.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// Create insère une nouvelle dépense
func (r *ExpenseRepository) Create(expense *models.Expense) error {
	query := fmt.Sprintf(`
		INSERT INTO expenses (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, expenseColumns)

	_, err := r.db.ExecWithTimeout(query,
		expense.ID, expense.Date, expense.Description, expense.AmountHT,
		expense.AmountTVA, expense.Category, expense.ReceiptPath,
		expense.ClientID, expense.SupplierName, expense.InvoiceNumber,
		expense.PaymentMethod, expense.Type, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting expense: %w", err)
	}

	return nil
}

// GetByID obtient une dépense par ID
func (r *ExpenseRepository) GetByID(id uuid.UUID) (*models.Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM expenses WHERE id = $1`, expenseColumns)

	expense, err := scanExpense(r.db.QueryRowWithTimeout(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("Dépense non trouvée.")
		}
		return nil, fmt.Errorf("error querying expense: %w", err)
	}

	return expense, nil
}

// List obtient toutes les dépenses, les plus récentes en premier
func (r *ExpenseRepository) List() ([]models.Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM expenses ORDER BY date DESC`, expenseColumns)

	rows, err := r.db.QueryWithTimeout(query)
	if err != nil {
		return nil, fmt.Errorf("error querying expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}

	return expenses, rows.Err()
}

// Update applique une mise à jour partielle d'une dépense
func (r *ExpenseRepository) Update(id uuid.UUID, req *models.UpdateExpenseRequest) error {
	fields := []string{}
	values := []interface{}{}
	argIndex := 1

	addField := func(column string, value interface{}) {
		fields = append(fields, fmt.Sprintf("%s = $%d", column, argIndex))
		values = append(values, value)
		argIndex++
	}

	if req.Date != nil {
		addField("date", *req.Date)
	}
	if req.Description != nil {
		addField("description", *req.Description)
	}
	if req.AmountHT != nil {
		addField("amount_ht", *req.AmountHT)
	}
	if req.AmountTVA != nil {
		addField("amount_tva", *req.AmountTVA)
	}
	if req.Category != nil {
		addField("category", *req.Category)
	}
	if req.ReceiptPath != nil {
		addField("receipt_path", *req.ReceiptPath)
	}
	if req.ClientID != nil {
		addField("client_id", *req.ClientID)
	}
	if req.SupplierName != nil {
		addField("supplier_name", *req.SupplierName)
	}
	if req.InvoiceNumber != nil {
		addField("invoice_number", *req.InvoiceNumber)
	}
	if req.PaymentMethod != nil {
		addField("payment_method", *req.PaymentMethod)
	}
	if req.Type != nil {
		addField("type", *req.Type)
	}

	if len(fields) == 0 {
		return nil
	}

	values = append(values, id)
	query := fmt.Sprintf("UPDATE expenses SET %s WHERE id = $%d",
		strings.Join(fields, ", "), argIndex)

	result, err := r.db.ExecWithTimeout(query, values...)
	if err != nil {
		return fmt.Errorf("error updating expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.NewNotFoundError("Dépense non trouvée.")
	}

	return nil
}

// Delete supprime une dépense
func (r *ExpenseRepository) Delete(id uuid.UUID) error {
	result, err := r.db.ExecWithTimeout(`DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.NewNotFoundError("Dépense non trouvée.")
	}

	return nil
}
