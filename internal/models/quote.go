package models

import (
	"time"

	"github.com/google/uuid"
)

// QuoteStatus représente le statut d'un devis
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "Brouillon"
	QuoteStatusSent     QuoteStatus = "Envoyé"
	QuoteStatusAccepted QuoteStatus = "Accepté"
	QuoteStatusRefused  QuoteStatus = "Refusé"
)

// Valid vérifie que le statut appartient à l'ensemble fermé
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRefused:
		return true
	}
	return false
}

// Quote représente un devis
type Quote struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	Number     string      `json:"number" db:"number"`
	ClientID   *uuid.UUID  `json:"client_id" db:"client_id"`
	ClientName *string     `json:"client_name,omitempty"`
	Object     string      `json:"object" db:"object"`
	Date       *string     `json:"date" db:"date"`
	ExpiryDate *string     `json:"expiry_date" db:"expiry_date"`
	Status     QuoteStatus `json:"status" db:"status"`
	Items      LineItems   `json:"items" db:"items"`
	TotalHT    float64     `json:"total_ht" db:"total_ht"`
	TotalTVA   float64     `json:"total_tva" db:"total_tva"`
	TotalTTC   float64     `json:"total_ttc" db:"total_ttc"`
	SentAt     *string     `json:"sent_at" db:"sent_at"`
	AcceptedAt *string     `json:"accepted_at" db:"accepted_at"`
	RefusedAt  *string     `json:"refused_at" db:"refused_at"`

	// Référence arrière vers la facture issue de la conversion.
	// Non nul si et seulement si une conversion a eu lieu.
	InvoiceID *uuid.UUID `json:"invoice_id" db:"invoice_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateQuoteRequest représente le request pour créer un devis
type CreateQuoteRequest struct {
	Number     string       `json:"number" binding:"required"`
	ClientID   *uuid.UUID   `json:"client_id"`
	Object     string       `json:"object" binding:"required"`
	Date       *string      `json:"date"`
	ExpiryDate *string      `json:"expiry_date"`
	Status     *QuoteStatus `json:"status"`
	Items      LineItems    `json:"items"`
	TotalHT    float64      `json:"total_ht"`
	TotalTVA   float64      `json:"total_tva"`
	TotalTTC   float64      `json:"total_ttc"`
}

// UpdateQuoteRequest représente un request de mise à jour partielle.
// Un champ nil est laissé inchangé.
type UpdateQuoteRequest struct {
	Status     *QuoteStatus `json:"status"`
	SentAt     *string      `json:"sent_at"`
	AcceptedAt *string      `json:"accepted_at"`
	RefusedAt  *string      `json:"refused_at"`
	Object     *string      `json:"object"`
	Items      *LineItems   `json:"items"`
	TotalHT    *float64     `json:"total_ht"`
	TotalTVA   *float64     `json:"total_tva"`
	TotalTTC   *float64     `json:"total_ttc"`
	Date       *string      `json:"date"`
	ExpiryDate *string      `json:"expiry_date"`
	ClientID   *uuid.UUID   `json:"client_id"`
}
