package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/facturio/compta-service/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// dataURIPattern reconnaît un data URI base64 (ex. data:image/png;base64,...)
var dataURIPattern = regexp.MustCompile(`^data:([A-Za-z0-9.+/-]+);base64,(.+)$`)

// ReceiptStorageService matérialise les justificatifs reçus en data URI
// sur disque et les remplace par une référence stable servie sous /uploads.
type ReceiptStorageService struct {
	dir    string
	logger *logrus.Logger
}

// NewReceiptStorageService crée le service et son répertoire de stockage
func NewReceiptStorageService(dir string, logger *logrus.Logger) (*ReceiptStorageService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating uploads directory: %w", err)
	}
	return &ReceiptStorageService{
		dir:    dir,
		logger: logger,
	}, nil
}

// Store écrit le justificatif sur disque si path est un data URI et renvoie
// la référence /uploads/<fichier>. Toute autre valeur est renvoyée telle
// quelle : les références déjà stockées restent stables.
func (s *ReceiptStorageService) Store(path *string) (*string, error) {
	if path == nil {
		return nil, nil
	}

	match := dataURIPattern.FindStringSubmatch(*path)
	if match == nil {
		return path, nil
	}

	data, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		return nil, models.NewInvalidInputError("Justificatif illisible : encodage base64 invalide.")
	}

	name := uuid.New().String() + extensionFor(match[1])
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("error writing receipt file: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"file":      name,
		"mime_type": match[1],
		"size":      len(data),
	}).Info("Receipt stored")

	ref := "/uploads/" + name
	return &ref, nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "application/pdf":
		return ".pdf"
	default:
		return ".bin"
	}
}
