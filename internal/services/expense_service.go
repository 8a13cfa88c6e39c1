package services

import (
	"time"

	"github.com/facturio/compta-service/internal/database"
	"github.com/facturio/compta-service/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ExpenseService gère la logique métier des dépenses et de leurs justificatifs
type ExpenseService struct {
	expenseRepo *database.ExpenseRepository
	receipts    *ReceiptStorageService
	logger      *logrus.Logger
}

// NewExpenseService crée une nouvelle instance du service
func NewExpenseService(db *database.DB, receipts *ReceiptStorageService, logger *logrus.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: database.NewExpenseRepository(db, logger),
		receipts:    receipts,
		logger:      logger,
	}
}

// Create crée une dépense. Un justificatif fourni en data URI est écrit sur
// disque et remplacé par sa référence avant insertion.
func (s *ExpenseService) Create(req *models.CreateExpenseRequest) (*models.Expense, error) {
	receiptPath, err := s.receipts.Store(req.ReceiptPath)
	if err != nil {
		return nil, err
	}

	expenseType := models.ExpenseTypeFrais
	if req.Type != nil {
		if *req.Type != models.ExpenseTypeAchat && *req.Type != models.ExpenseTypeFrais {
			return nil, models.NewInvalidInputError("Type de dépense inconnu : " + string(*req.Type))
		}
		expenseType = *req.Type
	}

	expense := &models.Expense{
		ID:            uuid.New(),
		Date:          req.Date,
		Description:   req.Description,
		AmountHT:      req.AmountHT,
		AmountTVA:     req.AmountTVA,
		Category:      req.Category,
		ReceiptPath:   receiptPath,
		ClientID:      req.ClientID,
		SupplierName:  req.SupplierName,
		InvoiceNumber: req.InvoiceNumber,
		PaymentMethod: req.PaymentMethod,
		Type:          expenseType,
		CreatedAt:     time.Now(),
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"expense_id": expense.ID,
		"type":       expense.Type,
	}).Info("Expense created")

	return expense, nil
}

// Get obtient une dépense par ID
func (s *ExpenseService) Get(id uuid.UUID) (*models.Expense, error) {
	return s.expenseRepo.GetByID(id)
}

// List obtient toutes les dépenses
func (s *ExpenseService) List() ([]models.Expense, error) {
	return s.expenseRepo.List()
}

// Update applique une mise à jour partielle d'une dépense
func (s *ExpenseService) Update(id uuid.UUID, req *models.UpdateExpenseRequest) error {
	if req.Type != nil && *req.Type != models.ExpenseTypeAchat && *req.Type != models.ExpenseTypeFrais {
		return models.NewInvalidInputError("Type de dépense inconnu : " + string(*req.Type))
	}

	if req.ReceiptPath != nil {
		receiptPath, err := s.receipts.Store(req.ReceiptPath)
		if err != nil {
			return err
		}
		req.ReceiptPath = receiptPath
	}

	if err := s.expenseRepo.Update(id, req); err != nil {
		return err
	}

	s.logger.WithField("expense_id", id).Info("Expense updated")
	return nil
}

// Delete supprime une dépense
func (s *ExpenseService) Delete(id uuid.UUID) error {
	if err := s.expenseRepo.Delete(id); err != nil {
		return err
	}

	s.logger.WithField("expense_id", id).Info("Expense deleted")
	return nil
}
