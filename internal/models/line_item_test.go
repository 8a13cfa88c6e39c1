package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemsValidate(t *testing.T) {
	valid := LineItems{
		{Description: "Développement", Quantity: 2, UnitPrice: 500, TVARate: 20, Amount: 1000},
		{Description: "Hébergement", Quantity: 1, UnitPrice: 50, TVARate: 20, Amount: 50},
	}
	assert.NoError(t, valid.Validate())

	negativeQty := LineItems{{Description: "Conseil", Quantity: -1, UnitPrice: 100}}
	err := negativeQty.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrorCodeInvalidRequest, CodeOf(err))
	assert.Contains(t, err.Error(), "quantité négative")

	negativePrice := LineItems{
		{Description: "Conseil", Quantity: 1, UnitPrice: 100},
		{Description: "Remise", Quantity: 1, UnitPrice: -50},
	}
	err = negativePrice.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ligne 2")
}

func TestLineItemsValueAndScan(t *testing.T) {
	items := LineItems{
		{Description: "Audit", Quantity: 1, UnitPrice: 800, TVARate: 20, Amount: 800},
		{Description: "Formation", Quantity: 3, UnitPrice: 400, TVARate: 20, Amount: 1200},
		{Description: "Support", Quantity: 10, UnitPrice: 90, TVARate: 20, Amount: 900},
	}

	value, err := items.Value()
	require.NoError(t, err)

	var decoded LineItems
	require.NoError(t, decoded.Scan(value))

	// L'ordre des lignes est significatif et doit être conservé
	require.Len(t, decoded, 3)
	assert.Equal(t, "Audit", decoded[0].Description)
	assert.Equal(t, "Formation", decoded[1].Description)
	assert.Equal(t, "Support", decoded[2].Description)
	assert.Equal(t, items, decoded)
}

func TestLineItemsValueNil(t *testing.T) {
	var items LineItems
	value, err := items.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestLineItemsScanNil(t *testing.T) {
	var items LineItems
	require.NoError(t, items.Scan(nil))
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestLineItemsScanBytes(t *testing.T) {
	var items LineItems
	require.NoError(t, items.Scan([]byte(`[{"description":"Vente","quantity":2,"unit_price":30,"tva_rate":20,"amount":60}]`)))
	require.Len(t, items, 1)
	assert.Equal(t, 60.0, items[0].Amount)
}
