package services

import (
	"time"

	"github.com/facturio/compta-service/internal/database"
	"github.com/facturio/compta-service/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// auditUser est l'identifiant d'acteur journalisé dans les événements
const auditUser = "system"

// InvoiceService gère la logique métier du cycle de vie des factures.
// Cycle principal : Brouillon → Envoyée → Payée. L'axe de transmission
// réglementaire évolue indépendamment. Dès qu'une facture quitte le
// Brouillon, ses données fiscales sont gelées.
type InvoiceService struct {
	invoiceRepo *database.InvoiceRepository
	logger      *logrus.Logger
}

// NewInvoiceService crée une nouvelle instance du service
func NewInvoiceService(db *database.DB, logger *logrus.Logger) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: database.NewInvoiceRepository(db, logger),
		logger:      logger,
	}
}

// Create crée une facture, éventuellement par conversion d'un devis.
// L'insertion, la référence arrière du devis et l'événement creation sont
// validés dans la même transaction.
func (s *InvoiceService) Create(req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	if err := req.Items.Validate(); err != nil {
		return nil, err
	}

	status := models.InvoiceStatusDraft
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, models.NewInvalidInputError("Statut de facture inconnu : " + string(*req.Status))
		}
		status = *req.Status
	}

	transmission := models.TransmissionStatusNotTransmitted
	if req.StatutTransmission != nil {
		if !req.StatutTransmission.Valid() {
			return nil, models.NewInvalidInputError("Statut de transmission inconnu : " + string(*req.StatutTransmission))
		}
		transmission = *req.StatutTransmission
	}

	now := time.Now()
	invoice := &models.Invoice{
		ID:                 uuid.New(),
		Number:             req.Number,
		QuoteID:            req.QuoteID,
		ClientID:           req.ClientID,
		Object:             req.Object,
		Date:               req.Date,
		Status:             status,
		Items:              req.Items,
		TotalHT:            req.TotalHT,
		TotalTVA:           req.TotalTVA,
		TotalTTC:           req.TotalTTC,
		TypeOperation:      req.TypeOperation,
		NatureOperation:    req.NatureOperation,
		PaysClient:         req.PaysClient,
		DateEncaissement:   req.DateEncaissement,
		StatutTransmission: transmission,
		DateTransmission:   req.DateTransmission,
		ReferencePDP:       req.ReferencePDP,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.invoiceRepo.Create(invoice, auditUser); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"invoice_id": invoice.ID,
		"number":     invoice.Number,
		"quote_id":   invoice.QuoteID,
	}).Info("Invoice created")

	return invoice, nil
}

// Get obtient une facture par ID
func (s *InvoiceService) Get(id uuid.UUID) (*models.Invoice, error) {
	return s.invoiceRepo.GetByID(id)
}

// List obtient toutes les factures
func (s *InvoiceService) List() ([]models.Invoice, error) {
	return s.invoiceRepo.List()
}

// Update applique une mise à jour partielle d'une facture. Le gel des
// données fiscales et le journal d'audit sont appliqués par le repository
// sous verrou de ligne.
func (s *InvoiceService) Update(id uuid.UUID, req *models.UpdateInvoiceRequest) error {
	if req.Status != nil && !req.Status.Valid() {
		return models.NewInvalidInputError("Statut de facture inconnu : " + string(*req.Status))
	}
	if req.StatutTransmission != nil && !req.StatutTransmission.Valid() {
		return models.NewInvalidInputError("Statut de transmission inconnu : " + string(*req.StatutTransmission))
	}
	if req.Items != nil {
		if err := req.Items.Validate(); err != nil {
			return err
		}
	}

	if err := s.invoiceRepo.Update(id, req, auditUser); err != nil {
		return err
	}

	s.logger.WithField("invoice_id", id).Info("Invoice updated")
	return nil
}

// Delete supprime une facture encore au statut Brouillon
func (s *InvoiceService) Delete(id uuid.UUID) error {
	if err := s.invoiceRepo.Delete(id); err != nil {
		return err
	}

	s.logger.WithField("invoice_id", id).Info("Invoice deleted")
	return nil
}

// GetEvents obtient le journal d'audit d'une facture
func (s *InvoiceService) GetEvents(id uuid.UUID) ([]models.InvoiceEvent, error) {
	return s.invoiceRepo.GetEvents(id)
}
