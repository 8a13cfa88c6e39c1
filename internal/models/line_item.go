package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LineItem représente une ligne facturable d'un devis ou d'une facture
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TVARate     float64 `json:"tva_rate"`
	Amount      float64 `json:"amount"`
}

// LineItems représente la liste ordonnée des lignes d'un document.
// L'ordre est significatif (ordre d'affichage) et restitué tel quel.
type LineItems []LineItem

// Value sérialise les lignes en JSON pour le stockage
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("error marshaling line items: %w", err)
	}
	return string(data), nil
}

// Scan désérialise les lignes depuis la colonne JSON
func (l *LineItems) Scan(src interface{}) error {
	if src == nil {
		*l = LineItems{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for line items: %T", src)
	}

	if len(data) == 0 {
		*l = LineItems{}
		return nil
	}

	return json.Unmarshal(data, l)
}

// Validate vérifie la validité structurelle des lignes.
// Les totaux du document sont fournis par l'appelant et stockés tels quels.
func (l LineItems) Validate() error {
	for i, item := range l {
		if item.Quantity < 0 {
			return NewInvalidInputError(fmt.Sprintf("La ligne %d a une quantité négative.", i+1))
		}
		if item.UnitPrice < 0 {
			return NewInvalidInputError(fmt.Sprintf("La ligne %d a un prix unitaire négatif.", i+1))
		}
	}
	return nil
}
