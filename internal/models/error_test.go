package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrorCodeInvalidRequest, CodeOf(NewInvalidInputError("champ manquant")))
	assert.Equal(t, ErrorCodeNotFound, CodeOf(NewNotFoundError("introuvable")))
	assert.Equal(t, ErrorCodeConflict, CodeOf(NewConflictError("doublon")))
	assert.Equal(t, ErrorCodeForbidden, CodeOf(NewForbiddenError("interdit")))
	assert.Equal(t, ErrorCodeInternal, CodeOf(errors.New("panne")))
	assert.Equal(t, ErrorCodeInternal, CodeOf(NewInternalError("panne", errors.New("cause"))))
}

func TestCodeOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("error deleting invoice: %w", NewForbiddenError("Impossible de supprimer une facture émise."))
	assert.Equal(t, ErrorCodeForbidden, CodeOf(wrapped))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connexion fermée")
	err := NewInternalError("panne", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "panne", err.Error())
}
