package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus représente le statut principal d'une facture
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "Brouillon"
	InvoiceStatusSent  InvoiceStatus = "Envoyée"
	InvoiceStatusPaid  InvoiceStatus = "Payée"
)

// Valid vérifie que le statut appartient à l'ensemble fermé
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid:
		return true
	}
	return false
}

// TransmissionStatus représente le statut de transmission réglementaire,
// axe indépendant du statut principal
type TransmissionStatus string

const (
	TransmissionStatusNotTransmitted TransmissionStatus = "Non transmis"
	TransmissionStatusTransmitted    TransmissionStatus = "Transmis"
)

// Valid vérifie que le statut de transmission appartient à l'ensemble fermé
func (s TransmissionStatus) Valid() bool {
	switch s {
	case TransmissionStatusNotTransmitted, TransmissionStatusTransmitted:
		return true
	}
	return false
}

// EventAction représente l'action journalisée d'un événement de facture
type EventAction string

const (
	EventActionCreation     EventAction = "creation"
	EventActionModification EventAction = "modification"
	EventActionEmission     EventAction = "emission"
	EventActionPaiement     EventAction = "paiement"
)

// Invoice représente une facture
type Invoice struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	Number     string        `json:"number" db:"number"`
	QuoteID    *uuid.UUID    `json:"quote_id" db:"quote_id"`
	ClientID   *uuid.UUID    `json:"client_id" db:"client_id"`
	ClientName *string       `json:"client_name,omitempty"`
	Object     string        `json:"object" db:"object"`
	Date       *string       `json:"date" db:"date"`
	Status     InvoiceStatus `json:"status" db:"status"`
	Items      LineItems     `json:"items" db:"items"`
	TotalHT    float64       `json:"total_ht" db:"total_ht"`
	TotalTVA   float64       `json:"total_tva" db:"total_tva"`
	TotalTTC   float64       `json:"total_ttc" db:"total_ttc"`

	SentAt        *string `json:"sent_at" db:"sent_at"`
	PaidAt        *string `json:"paid_at" db:"paid_at"`
	PaymentMethod *string `json:"payment_method" db:"payment_method"`

	// Métadonnées fiscales de l'opération
	TypeOperation    *string `json:"type_operation" db:"type_operation"`
	NatureOperation  *string `json:"nature_operation" db:"nature_operation"`
	PaysClient       *string `json:"pays_client" db:"pays_client"`
	DateEncaissement *string `json:"date_encaissement" db:"date_encaissement"`

	// Axe de transmission, modifiable quel que soit le statut principal
	StatutTransmission TransmissionStatus `json:"statut_transmission" db:"statut_transmission"`
	DateTransmission   *string            `json:"date_transmission" db:"date_transmission"`
	ReferencePDP       *string            `json:"reference_pdp" db:"reference_pdp"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// InvoiceEvent représente une entrée du journal d'audit d'une facture.
// Écriture seule : jamais mis à jour ni supprimé.
type InvoiceEvent struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	InvoiceID uuid.UUID   `json:"invoice_id" db:"invoice_id"`
	Action    EventAction `json:"action" db:"action"`
	Date      time.Time   `json:"date" db:"date"`
	User      string      `json:"user" db:"user_name"`
}

// CreateInvoiceRequest représente le request pour créer une facture
type CreateInvoiceRequest struct {
	Number   string         `json:"number" binding:"required"`
	QuoteID  *uuid.UUID     `json:"quote_id"`
	ClientID *uuid.UUID     `json:"client_id"`
	Object   string         `json:"object" binding:"required"`
	Date     *string        `json:"date"`
	Status   *InvoiceStatus `json:"status"`
	Items    LineItems      `json:"items"`
	TotalHT  float64        `json:"total_ht"`
	TotalTVA float64        `json:"total_tva"`
	TotalTTC float64        `json:"total_ttc"`

	TypeOperation    *string `json:"type_operation"`
	NatureOperation  *string `json:"nature_operation"`
	PaysClient       *string `json:"pays_client"`
	DateEncaissement *string `json:"date_encaissement"`

	StatutTransmission *TransmissionStatus `json:"statut_transmission"`
	DateTransmission   *string             `json:"date_transmission"`
	ReferencePDP       *string             `json:"reference_pdp"`
}

// UpdateInvoiceRequest représente un request de mise à jour partielle.
// Un champ nil est laissé inchangé.
type UpdateInvoiceRequest struct {
	Status        *InvoiceStatus `json:"status"`
	SentAt        *string        `json:"sent_at"`
	PaidAt        *string        `json:"paid_at"`
	PaymentMethod *string        `json:"payment_method"`
	Object        *string        `json:"object"`
	Items         *LineItems     `json:"items"`
	TotalHT       *float64       `json:"total_ht"`
	TotalTVA      *float64       `json:"total_tva"`
	TotalTTC      *float64       `json:"total_ttc"`
	Date          *string        `json:"date"`
	ClientID      *uuid.UUID     `json:"client_id"`
	Number        *string        `json:"number"`

	TypeOperation    *string `json:"type_operation"`
	NatureOperation  *string `json:"nature_operation"`
	PaysClient       *string `json:"pays_client"`
	DateEncaissement *string `json:"date_encaissement"`

	StatutTransmission *TransmissionStatus `json:"statut_transmission"`
	DateTransmission   *string             `json:"date_transmission"`
	ReferencePDP       *string             `json:"reference_pdp"`
}

// TouchesFiscalFields indique si la mise à jour modifie les données fiscales
// (lignes, totaux, client, numéro), gelées dès que la facture quitte le
// statut Brouillon. Renvoyer le même numéro n'est pas une modification.
func (r *UpdateInvoiceRequest) TouchesFiscalFields(currentNumber string) bool {
	if r.Items != nil || r.TotalHT != nil || r.TotalTVA != nil || r.TotalTTC != nil || r.ClientID != nil {
		return true
	}
	if r.Number != nil && *r.Number != currentNumber {
		return true
	}
	return false
}

// Empty indique qu'aucun champ reconnu n'est présent ; dans ce cas aucune
// écriture ni aucun événement d'audit n'a lieu
func (r *UpdateInvoiceRequest) Empty() bool {
	return r.Status == nil && r.SentAt == nil && r.PaidAt == nil && r.PaymentMethod == nil &&
		r.Object == nil && r.Items == nil && r.TotalHT == nil && r.TotalTVA == nil &&
		r.TotalTTC == nil && r.Date == nil && r.ClientID == nil && r.Number == nil &&
		r.TypeOperation == nil && r.NatureOperation == nil && r.PaysClient == nil &&
		r.DateEncaissement == nil && r.StatutTransmission == nil && r.DateTransmission == nil &&
		r.ReferencePDP == nil
}

// ResolveEventAction détermine l'action à journaliser pour une mise à jour
// acceptée, selon la transition de statut observée
func ResolveEventAction(current InvoiceStatus, r *UpdateInvoiceRequest) EventAction {
	if r.Status != nil {
		if *r.Status == InvoiceStatusSent && current == InvoiceStatusDraft {
			return EventActionEmission
		}
		if *r.Status == InvoiceStatusPaid && current != InvoiceStatusPaid {
			return EventActionPaiement
		}
	}
	return EventActionModification
}
