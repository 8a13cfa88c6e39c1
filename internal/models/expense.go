package models

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseType représente le type d'une dépense
type ExpenseType string

const (
	ExpenseTypeAchat ExpenseType = "achat"
	ExpenseTypeFrais ExpenseType = "frais"
)

// Expense représente une dépense avec justificatif optionnel
type Expense struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	Date          *string     `json:"date" db:"date"`
	Description   *string     `json:"description" db:"description"`
	AmountHT      float64     `json:"amount_ht" db:"amount_ht"`
	AmountTVA     float64     `json:"amount_tva" db:"amount_tva"`
	Category      *string     `json:"category" db:"category"`
	ReceiptPath   *string     `json:"receipt_path" db:"receipt_path"`
	ClientID      *uuid.UUID  `json:"client_id" db:"client_id"`
	SupplierName  *string     `json:"supplier_name" db:"supplier_name"`
	InvoiceNumber *string     `json:"invoice_number" db:"invoice_number"`
	PaymentMethod *string     `json:"payment_method" db:"payment_method"`
	Type          ExpenseType `json:"type" db:"type"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}

// CreateExpenseRequest représente le request pour créer une dépense.
// ReceiptPath peut être un data URI, converti en référence stable au stockage.
type CreateExpenseRequest struct {
	Date          *string      `json:"date"`
	Description   *string      `json:"description"`
	AmountHT      float64      `json:"amount_ht"`
	AmountTVA     float64      `json:"amount_tva"`
	Category      *string      `json:"category"`
	ReceiptPath   *string      `json:"receipt_path"`
	ClientID      *uuid.UUID   `json:"client_id"`
	SupplierName  *string      `json:"supplier_name"`
	InvoiceNumber *string      `json:"invoice_number"`
	PaymentMethod *string      `json:"payment_method"`
	Type          *ExpenseType `json:"type"`
}

// UpdateExpenseRequest représente un request de mise à jour partielle
type UpdateExpenseRequest struct {
	Date          *string      `json:"date"`
	Description   *string      `json:"description"`
	AmountHT      *float64     `json:"amount_ht"`
	AmountTVA     *float64     `json:"amount_tva"`
	Category      *string      `json:"category"`
	ReceiptPath   *string      `json:"receipt_path"`
	ClientID      *uuid.UUID   `json:"client_id"`
	SupplierName  *string      `json:"supplier_name"`
	InvoiceNumber *string      `json:"invoice_number"`
	PaymentMethod *string      `json:"payment_method"`
	Type          *ExpenseType `json:"type"`
}
