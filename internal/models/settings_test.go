package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSettingValue(t *testing.T) {
	assert.Equal(t, float64(25), DecodeSettingValue("25"))
	assert.Equal(t, true, DecodeSettingValue("true"))
	assert.Equal(t, []interface{}{"20", "10", "5.5"}, DecodeSettingValue(`["20","10","5.5"]`))

	// Une chaîne non-JSON est rendue telle quelle
	assert.Equal(t, "Mon Entreprise", DecodeSettingValue("Mon Entreprise"))
	assert.Equal(t, "", DecodeSettingValue(""))
}

func TestEncodeSettingValue(t *testing.T) {
	// Les chaînes ne sont pas re-sérialisées
	encoded, err := EncodeSettingValue("Mon Entreprise")
	require.NoError(t, err)
	assert.Equal(t, "Mon Entreprise", encoded)

	encoded, err = EncodeSettingValue([]string{"20", "10"})
	require.NoError(t, err)
	assert.Equal(t, `["20","10"]`, encoded)

	encoded, err = EncodeSettingValue(42.5)
	require.NoError(t, err)
	assert.Equal(t, "42.5", encoded)
}
