package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/facturio/compta-service/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// QuoteRepository gère les opérations de base de données pour les devis
type QuoteRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewQuoteRepository crée une nouvelle instance du repository
func NewQuoteRepository(db *DB, logger *logrus.Logger) *QuoteRepository {
	return &QuoteRepository{
		db:     db,
		logger: logger,
	}
}

const quoteSelect = `
	SELECT q.id, q.number, q.client_id, q.object, q.date, q.expiry_date,
		   q.status, q.items, q.total_ht, q.total_tva, q.total_ttc,
		   q.sent_at, q.accepted_at, q.refused_at, q.invoice_id, q.created_at,
		   c.name AS client_name
	FROM quotes q
	LEFT JOIN clients c ON q.client_id = c.id
`

func scanQuote(row interface{ Scan(...interface{}) error }) (*models.Quote, error) {
	var quote models.Quote
	err := row.Scan(
		&quote.ID, &quote.Number, &quote.ClientID, &quote.Object, &quote.Date,
		&quote.ExpiryDate, &quote.Status, &quote.Items, &quote.TotalHT,
		&quote.TotalTVA, &quote.TotalTTC, &quote.SentAt, &quote.AcceptedAt,
		&quote.RefusedAt, &quote.InvoiceID, &quote.CreatedAt, &quote.ClientName,
	)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Create insère un nouveau devis. Un numéro déjà pris est rejeté en Conflict
// par la contrainte d'unicité.
func (r *QuoteRepository) Create(quote *models.Quote) error {
	query := `
		INSERT INTO quotes (
			id, number, client_id, object, date, expiry_date, status, items,
			total_ht, total_tva, total_ttc, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := r.db.ExecWithTimeout(query,
		quote.ID, quote.Number, quote.ClientID, quote.Object, quote.Date,
		quote.ExpiryDate, quote.Status, quote.Items,
		quote.TotalHT, quote.TotalTVA, quote.TotalTTC, quote.CreatedAt,
	)

	if err != nil {
		if mapped := mapConstraintViolation(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("error inserting quote: %w", err)
	}

	return nil
}

// GetByID obtient un devis par ID
func (r *QuoteRepository) GetByID(id uuid.UUID) (*models.Quote, error) {
	quote, err := scanQuote(r.db.QueryRowWithTimeout(quoteSelect+` WHERE q.id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("Devis non trouvé.")
		}
		return nil, fmt.Errorf("error querying quote: %w", err)
	}
	return quote, nil
}

// List obtient tous les devis, les plus récents en premier
func (r *QuoteRepository) List() ([]models.Quote, error) {
	rows, err := r.db.QueryWithTimeout(quoteSelect + ` ORDER BY q.number DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying quotes: %w", err)
	}
	defer rows.Close()

	quotes := []models.Quote{}
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning quote: %w", err)
		}
		quotes = append(quotes, *quote)
	}

	return quotes, rows.Err()
}

// Update applique une mise à jour partielle : seuls les champs fournis
// changent, les autres restent inchangés
func (r *QuoteRepository) Update(id uuid.UUID, req *models.UpdateQuoteRequest) error {
	fields := []string{}
	values := []interface{}{}
	argIndex := 1

	addField := func(column string, value interface{}) {
		fields = append(fields, fmt.Sprintf("%s = $%d", column, argIndex))
		values = append(values, value)
		argIndex++
	}

	if req.Status != nil {
		addField("status", *req.Status)
	}
	if req.SentAt != nil {
		addField("sent_at", *req.SentAt)
	}
	if req.AcceptedAt != nil {
		addField("accepted_at", *req.AcceptedAt)
	}
	if req.RefusedAt != nil {
		addField("refused_at", *req.RefusedAt)
	}
	if req.Object != nil {
		addField("object", *req.Object)
	}
	if req.Items != nil {
		addField("items", *req.Items)
	}
	if req.TotalHT != nil {
		addField("total_ht", *req.TotalHT)
	}
	if req.TotalTVA != nil {
		addField("total_tva", *req.TotalTVA)
	}
	if req.TotalTTC != nil {
		addField("total_ttc", *req.TotalTTC)
	}
	if req.Date != nil {
		addField("date", *req.Date)
	}
	if req.ExpiryDate != nil {
		addField("expiry_date", *req.ExpiryDate)
	}
	if req.ClientID != nil {
		addField("client_id", *req.ClientID)
	}

	if len(fields) == 0 {
		// Rien à faire, mais l'appelant attend que le devis existe
		return r.exists(id)
	}

	values = append(values, id)
	query := fmt.Sprintf("UPDATE quotes SET %s WHERE id = $%d",
		strings.Join(fields, ", "), argIndex)

	result, err := r.db.ExecWithTimeout(query, values...)
	if err != nil {
		if mapped := mapConstraintViolation(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("error updating quote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.NewNotFoundError("Devis non trouvé.")
	}

	return nil
}

// Delete supprime un devis. Un devis déjà converti en facture
// (invoice_id non nul) ne peut pas être supprimé.
func (r *QuoteRepository) Delete(id uuid.UUID) error {
	return r.db.WithTransaction(func(tx *sql.Tx) error {
		var invoiceID *uuid.UUID
		err := tx.QueryRow(`SELECT invoice_id FROM quotes WHERE id = $1 FOR UPDATE`, id).Scan(&invoiceID)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.NewNotFoundError("Devis non trouvé.")
			}
			return fmt.Errorf("error querying quote: %w", err)
		}

		if invoiceID != nil {
			return models.NewForbiddenError("Impossible de supprimer un devis converti en facture.")
		}

		if _, err := tx.Exec(`DELETE FROM quotes WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error deleting quote: %w", err)
		}

		return nil
	})
}

func (r *QuoteRepository) exists(id uuid.UUID) error {
	var one int
	err := r.db.QueryRowWithTimeout(`SELECT 1 FROM quotes WHERE id = $1`, id).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.NewNotFoundError("Devis non trouvé.")
		}
		return fmt.Errorf("error querying quote: %w", err)
	}
	return nil
}
