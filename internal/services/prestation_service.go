package services

import (
	"github.com/facturio/compta-service/internal/database"
	"github.com/facturio/compta-service/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PrestationService gère la logique métier du catalogue de prestations
type PrestationService struct {
	prestationRepo *database.PrestationRepository
	logger         *logrus.Logger
}

// NewPrestationService crée une nouvelle instance du service
func NewPrestationService(db *database.DB, logger *logrus.Logger) *PrestationService {
	return &PrestationService{
		prestationRepo: database.NewPrestationRepository(db, logger),
		logger:         logger,
	}
}

// Create crée une prestation du catalogue
func (s *PrestationService) Create(req *models.CreatePrestationRequest) (*models.Prestation, error) {
	prestation := &models.Prestation{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Type:        req.Type,
		TVARate:     req.TVARate,
	}

	if err := s.prestationRepo.Create(prestation); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"prestation_id": prestation.ID,
		"name":          prestation.Name,
	}).Info("Prestation created")

	return prestation, nil
}

// List obtient toutes les prestations du catalogue
func (s *PrestationService) List() ([]models.Prestation, error) {
	return s.prestationRepo.List()
}
