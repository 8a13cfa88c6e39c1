package models

import (
	"time"

	"github.com/google/uuid"
)

// Client représente un client (identité, contact, profil fiscal)
type Client struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       *string   `json:"email" db:"email"`
	Address     *string   `json:"address" db:"address"`
	SIRET       *string   `json:"siret" db:"siret"`
	Typology    string    `json:"typology" db:"typology"`
	TVAIntracom *string   `json:"tva_intracom" db:"tva_intracom"`
	Country     *string   `json:"country" db:"country"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateClientRequest représente le request pour créer un client
type CreateClientRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	SIRET       *string `json:"siret"`
	Typology    *string `json:"typology"`
	TVAIntracom *string `json:"tva_intracom"`
	Country     *string `json:"country"`
}

// UpdateClientRequest représente un request de mise à jour partielle
type UpdateClientRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	SIRET       *string `json:"siret"`
	Typology    *string `json:"typology"`
	TVAIntracom *string `json:"tva_intracom"`
	Country     *string `json:"country"`
}
