package db

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/spacesedan/reviewtopics/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/reviews.yaml
var defaultReviews []byte

type reviewFile struct {
	Reviews []models.Review `yaml:"reviews"`
}

// StaticStore serves reviews held in memory, loaded once from YAML.
type StaticStore struct {
	byLocation map[string][]models.Review
}

// LoadStaticStore reads reviews from path, or the bundled fixture when path is empty.
func LoadStaticStore(path string) (*StaticStore, error) {
	data := defaultReviews
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("[StaticStore] failed to read reviews file: %w", err)
		}
	}

	store, err := ParseStaticStore(data)
	if err != nil {
		return nil, err
	}

	slog.Info("[StaticStore] Loaded reviews",
		slog.String("source", sourceName(path)),
		slog.Int("locations", len(store.byLocation)))
	return store, nil
}

func ParseStaticStore(data []byte) (*StaticStore, error) {
	var file reviewFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("[StaticStore] failed to parse reviews: %w", err)
	}
	return NewStaticStore(file.Reviews), nil
}

func NewStaticStore(reviews []models.Review) *StaticStore {
	byLocation := make(map[string][]models.Review)
	for _, r := range reviews {
		byLocation[r.Location] = append(byLocation[r.Location], r)
	}
	return &StaticStore{byLocation: byLocation}
}

// ReviewsByLocation matches the location name exactly.
func (s *StaticStore) ReviewsByLocation(_ context.Context, location string) ([]models.Review, error) {
	found := s.byLocation[location]
	out := make([]models.Review, len(found))
	copy(out, found)
	return out, nil
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
