package models

import "github.com/google/uuid"

// PrestationType représente le type d'une prestation du catalogue
type PrestationType string

const (
	PrestationTypeService PrestationType = "service"
	PrestationTypeVente   PrestationType = "vente"
)

// Prestation représente une entrée du catalogue
type Prestation struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Description *string        `json:"description" db:"description"`
	UnitPrice   float64        `json:"unit_price" db:"unit_price"`
	Type        PrestationType `json:"type" db:"type"`
	TVARate     float64        `json:"tva_rate" db:"tva_rate"`
}

// CreatePrestationRequest représente le request pour créer une prestation
type CreatePrestationRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description *string        `json:"description"`
	UnitPrice   float64        `json:"unit_price"`
	Type        PrestationType `json:"type" binding:"required,oneof=service vente"`
	TVARate     float64        `json:"tva_rate"`
}
