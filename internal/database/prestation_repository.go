package database

import (
	"fmt"

	"github.com/facturio/compta-service/internal/models"
	"github.com/sirupsen/logrus"
)

// PrestationRepository gère les opérations de base de données pour le catalogue
type PrestationRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewPrestationRepository crée une nouvelle instance du repository
func NewPrestationRepository(db *DB, logger *logrus.Logger) *PrestationRepository {
	return &PrestationRepository{
		db:     db,
		logger: logger,
	}
}

// Create insère une nouvelle prestation
func (r *PrestationRepository) Create(prestation *models.Prestation) error {
	query := `
		INSERT INTO prestations (id, name, description, unit_price, type, tva_rate)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecWithTimeout(query,
		prestation.ID, prestation.Name, prestation.Description,
		prestation.UnitPrice, prestation.Type, prestation.TVARate,
	)
	if err != nil {
		return fmt.Errorf("error inserting prestation: %w", err)
	}

	return nil
}

// List obtient toutes les prestations du catalogue
func (r *PrestationRepository) List() ([]models.Prestation, error) {
	query := `
		SELECT id, name, description, unit_price, type, tva_rate
		FROM prestations
	`

	rows, err := r.db.QueryWithTimeout(query)
	if err != nil {
		return nil, fmt.Errorf("error querying prestations: %w", err)
	}
	defer rows.Close()

	prestations := []models.Prestation{}
	for rows.Next() {
		var prestation models.Prestation
		err := rows.Scan(
			&prestation.ID, &prestation.Name, &prestation.Description,
			&prestation.UnitPrice, &prestation.Type, &prestation.TVARate,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning prestation: %w", err)
		}
		prestations = append(prestations, prestation)
	}

	return prestations, rows.Err()
}
