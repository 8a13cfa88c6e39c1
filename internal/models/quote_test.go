package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteStatusValid(t *testing.T) {
	assert.True(t, QuoteStatusDraft.Valid())
	assert.True(t, QuoteStatusSent.Valid())
	assert.True(t, QuoteStatusAccepted.Valid())
	assert.True(t, QuoteStatusRefused.Valid())

	// L'ensemble est fermé, tout le reste est rejeté
	assert.False(t, QuoteStatus("Facturé").Valid())
	assert.False(t, QuoteStatus("brouillon").Valid())
	assert.False(t, QuoteStatus("").Valid())
}
