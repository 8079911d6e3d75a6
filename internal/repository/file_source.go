package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"PredictPulse/internal/domain/models"
)

// FileSource reads a catalog snapshot from disk, in the same envelope
// the fetch scripts write. Useful for local development and tests.
type FileSource struct {
	path     string
	platform models.Platform
}

func NewFileSource(path string, platform models.Platform) *FileSource {
	return &FileSource{path: path, platform: platform}
}

type fileSnapshot struct {
	Events []models.Event `json:"events"`
}

func (s *FileSource) Fetch(ctx context.Context) ([]models.Event, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}
	var snap fileSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", s.path, err)
	}
	for i := range snap.Events {
		if snap.Events[i].Platform == "" {
			snap.Events[i].Platform = s.platform
		}
	}
	return snap.Events, nil
}
