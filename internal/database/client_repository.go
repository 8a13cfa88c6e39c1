package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/facturio/compta-service/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ClientRepository gère les opérations de base de données pour les clients
type ClientRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewClientRepository crée une nouvelle instance du repository
func NewClientRepository(db *DB, logger *logrus.Logger) *ClientRepository {
	return &ClientRepository{
		db:     db,
		logger: logger,
	}
}

// Create insère un nouveau client
func (r *ClientRepository) Create(client *models.Client) error {
	query := `
		INSERT INTO clients (
			id, name, email, address, siret, typology, tva_intracom, country, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := r.db.ExecWithTimeout(query,
		client.ID, client.Name, client.Email, client.Address, client.SIRET,
		client.Typology, client.TVAIntracom, client.Country, client.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting client: %w", err)
	}

	return nil
}

// GetByID obtient un client par ID
func (r *ClientRepository) GetByID(id uuid.UUID) (*models.Client, error) {
	query := `
		SELECT id, name, email, address, siret, typology, tva_intracom, country, created_at
		FROM clients
		WHERE id = $1
	`

	var client models.Client
	err := r.db.QueryRowWithTimeout(query, id).Scan(
		&client.ID, &client.Name, &client.Email, &client.Address, &client.SIRET,
		&client.Typology, &client.TVAIntracom, &client.Country, &client.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("Client non trouvé.")
		}
		return nil, fmt.Errorf("error querying client: %w", err)
	}

	return &client, nil
}

// List obtient tous les clients triés par nom
func (r *ClientRepository) List() ([]models.Client, error) {
	query := `
		SELECT id, name, email, address, siret, typology, tva_intracom, country, created_at
		FROM clients
		ORDER BY name ASC
	`

	rows, err := r.db.QueryWithTimeout(query)
	if err != nil {
		return nil, fmt.Errorf("error querying clients: %w", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var client models.Client
		err := rows.Scan(
			&client.ID, &client.Name, &client.Email, &client.Address, &client.SIRET,
			&client.Typology, &client.TVAIntracom, &client.Country, &client.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning client: %w", err)
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

// Update applique une mise à jour partielle d'un client
func (r *ClientRepository) Update(id uuid.UUID, req *models.UpdateClientRequest) error {
	fields := []string{}
	values := []interface{}{}
	argIndex := 1

	addField := func(column string, value interface{}) {
		fields = append(fields, fmt.Sprintf("%s = $%d", column, argIndex))
		values = append(values, value)
		argIndex++
	}

	if req.Name != nil {
		addField("name", *req.Name)
	}
	if req.Email != nil {
		addField("email", *req.Email)
	}
	if req.Address != nil {
		addField("address", *req.Address)
	}
	if req.SIRET != nil {
		addField("siret", *req.SIRET)
	}
	if req.Typology != nil {
		addField("typology", *req.Typology)
	}
	if req.TVAIntracom != nil {
		addField("tva_intracom", *req.TVAIntracom)
	}
	if req.Country != nil {
		addField("country", *req.Country)
	}

	if len(fields) == 0 {
		return nil
	}

	values = append(values, id)
	query := fmt.Sprintf("UPDATE clients SET %s WHERE id = $%d",
		strings.Join(fields, ", "), argIndex)

	result, err := r.db.ExecWithTimeout(query, values...)
	if err != nil {
		return fmt.Errorf("error updating client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.NewNotFoundError("Client non trouvé.")
	}

	return nil
}

// Delete supprime un client
func (r *ClientRepository) Delete(id uuid.UUID) error {
	result, err := r.db.ExecWithTimeout(`DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.NewNotFoundError("Client non trouvé.")
	}

	return nil
}
