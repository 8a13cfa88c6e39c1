package services

import (
	"time"

	"github.com/facturio/compta-service/internal/database"
	"github.com/facturio/compta-service/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// defaultTypology est la typologie appliquée à un client sans typologie
const defaultTypology = "particulier"

// ClientService gère la logique métier des clients
type ClientService struct {
	clientRepo *database.ClientRepository
	logger     *logrus.Logger
}

// NewClientService crée une nouvelle instance du service
func NewClientService(db *database.DB, logger *logrus.Logger) *ClientService {
	return &ClientService{
		clientRepo: database.NewClientRepository(db, logger),
		logger:     logger,
	}
}

// Create crée un client
func (s *ClientService) Create(req *models.CreateClientRequest) (*models.Client, error) {
	typology := defaultTypology
	if req.Typology != nil && *req.Typology != "" {
		typology = *req.Typology
	}

	client := &models.Client{
		ID:          uuid.New(),
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		SIRET:       req.SIRET,
		Typology:    typology,
		TVAIntracom: req.TVAIntracom,
		Country:     req.Country,
		CreatedAt:   time.Now(),
	}

	if err := s.clientRepo.Create(client); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"client_id": client.ID,
		"name":      client.Name,
	}).Info("Client created")

	return client, nil
}

// Get obtient un client par ID
func (s *ClientService) Get(id uuid.UUID) (*models.Client, error) {
	return s.clientRepo.GetByID(id)
}

// List obtient tous les clients
func (s *ClientService) List() ([]models.Client, error) {
	return s.clientRepo.List()
}

// Update applique une mise à jour partielle d'un client
func (s *ClientService) Update(id uuid.UUID, req *models.UpdateClientRequest) error {
	if err := s.clientRepo.Update(id, req); err != nil {
		return err
	}

	s.logger.WithField("client_id", id).Info("Client updated")
	return nil
}

// Delete supprime un client
func (s *ClientService) Delete(id uuid.UUID) error {
	if err := s.clientRepo.Delete(id); err != nil {
		return err
	}

	s.logger.WithField("client_id", id).Info("Client deleted")
	return nil
}
