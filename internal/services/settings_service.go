package services

import (
	"encoding/json"
	"time"

	"github.com/facturio/compta-service/internal/database"
	"github.com/facturio/compta-service/internal/models"
	"github.com/sirupsen/logrus"
)

const settingsCacheKey = "compta:settings"

// SettingsService gère les réglages de l'application. Les lectures passent
// par un cache Redis optionnel ; toute écriture invalide le cache.
type SettingsService struct {
	settingsRepo *database.SettingsRepository
	redis        *database.Redis
	cacheTTL     time.Duration
	logger       *logrus.Logger
}

// NewSettingsService crée une nouvelle instance du service.
// redis peut être nil : le service dégrade alors vers la base seule.
func NewSettingsService(db *database.DB, redis *database.Redis, cacheTTL time.Duration, logger *logrus.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: database.NewSettingsRepository(db, logger),
		redis:        redis,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// GetAll obtient tous les réglages, valeurs décodées
func (s *SettingsService) GetAll() (models.Settings, error) {
	if cached := s.readCache(); cached != nil {
		return cached, nil
	}

	raw, err := s.settingsRepo.GetAll()
	if err != nil {
		return nil, err
	}

	settings := models.Settings{}
	for key, value := range raw {
		settings[key] = models.DecodeSettingValue(value)
	}

	s.writeCache(settings)
	return settings, nil
}

// Update remplace les valeurs des clés fournies et invalide le cache
func (s *SettingsService) Update(settings models.Settings) error {
	values := map[string]string{}
	for key, value := range settings {
		encoded, err := models.EncodeSettingValue(value)
		if err != nil {
			return models.NewInvalidInputError("Valeur de réglage non sérialisable : " + key)
		}
		values[key] = encoded
	}

	if err := s.settingsRepo.UpsertMany(values); err != nil {
		return err
	}

	s.invalidateCache()
	s.logger.WithField("keys", len(values)).Info("Settings updated")
	return nil
}

func (s *SettingsService) readCache() models.Settings {
	if s.redis == nil {
		return nil
	}

	raw, err := s.redis.Get(settingsCacheKey)
	if err != nil || raw == "" {
		return nil
	}

	var settings models.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.logger.WithError(err).Warn("Invalid settings cache entry, ignoring")
		return nil
	}
	return settings
}

func (s *SettingsService) writeCache(settings models.Settings) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return
	}
	if err := s.redis.SetWithTTL(settingsCacheKey, string(data), s.cacheTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to cache settings")
	}
}

func (s *SettingsService) invalidateCache() {
	if s.redis == nil {
		return
	}
	if err := s.redis.Delete(settingsCacheKey); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate settings cache")
	}
}
