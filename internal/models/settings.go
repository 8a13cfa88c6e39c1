package models

import "encoding/json"

// Settings représente la configuration à plat clé → valeur JSON
type Settings map[string]interface{}

// DecodeSettingValue restitue la valeur typée d'un réglage stocké.
// Les valeurs JSON (tableaux, objets, nombres, booléens) sont décodées,
// le reste est rendu comme chaîne brute.
func DecodeSettingValue(raw string) interface{} {
	var value interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	return value
}

// EncodeSettingValue sérialise une valeur de réglage pour le stockage.
// Les chaînes sont stockées telles quelles, le reste en JSON.
func EncodeSettingValue(value interface{}) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
