package services

import (
	"time"

	"github.com/facturio/compta-service/internal/database"
	"github.com/facturio/compta-service/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// QuoteService gère la logique métier du cycle de vie des devis.
// Cycle : Brouillon → Envoyé → {Accepté, Refusé}. La conversion en facture
// est portée par InvoiceService : la pose de invoice_id sur le devis est un
// effet de bord atomique de la création de facture.
type QuoteService struct {
	quoteRepo *database.QuoteRepository
	logger    *logrus.Logger
}

// NewQuoteService crée une nouvelle instance du service
func NewQuoteService(db *database.DB, logger *logrus.Logger) *QuoteService {
	return &QuoteService{
		quoteRepo: database.NewQuoteRepository(db, logger),
		logger:    logger,
	}
}

// Create crée un devis. Le numéro est fourni par l'appelant et doit être
// unique ; les totaux sont fournis par l'appelant et stockés tels quels.
func (s *QuoteService) Create(req *models.CreateQuoteRequest) (*models.Quote, error) {
	if err := req.Items.Validate(); err != nil {
		return nil, err
	}

	status := models.QuoteStatusDraft
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, models.NewInvalidInputError("Statut de devis inconnu : " + string(*req.Status))
		}
		status = *req.Status
	}

	quote := &models.Quote{
		ID:         uuid.New(),
		Number:     req.Number,
		ClientID:   req.ClientID,
		Object:     req.Object,
		Date:       req.Date,
		ExpiryDate: req.ExpiryDate,
		Status:     status,
		Items:      req.Items,
		TotalHT:    req.TotalHT,
		TotalTVA:   req.TotalTVA,
		TotalTTC:   req.TotalTTC,
		CreatedAt:  time.Now(),
	}

	if err := s.quoteRepo.Create(quote); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"quote_id": quote.ID,
		"number":   quote.Number,
	}).Info("Quote created")

	return quote, nil
}

// Get obtient un devis par ID
func (s *QuoteService) Get(id uuid.UUID) (*models.Quote, error) {
	return s.quoteRepo.GetByID(id)
}

// List obtient tous les devis
func (s *QuoteService) List() ([]models.Quote, error) {
	return s.quoteRepo.List()
}

// Update applique une mise à jour partielle d'un devis
func (s *QuoteService) Update(id uuid.UUID, req *models.UpdateQuoteRequest) error {
	if req.Status != nil && !req.Status.Valid() {
		return models.NewInvalidInputError("Statut de devis inconnu : " + string(*req.Status))
	}
	if req.Items != nil {
		if err := req.Items.Validate(); err != nil {
			return err
		}
	}

	if err := s.quoteRepo.Update(id, req); err != nil {
		return err
	}

	s.logger.WithField("quote_id", id).Info("Quote updated")
	return nil
}

// Delete supprime un devis non converti
func (s *QuoteService) Delete(id uuid.UUID) error {
	if err := s.quoteRepo.Delete(id); err != nil {
		return err
	}

	s.logger.WithField("quote_id", id).Info("Quote deleted")
	return nil
}
