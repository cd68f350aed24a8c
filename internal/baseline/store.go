package baseline

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"benchgate/internal/metric"
)

// SchemaVersion tags the on-disk baseline document.
const SchemaVersion = "1.0"

// Document is the persisted baseline schema: one representative value (the
// median at baseline time) per benchmark name.
type Document struct {
	Version    string             `json:"version"`
	Producer   string             `json:"producer"`
	Benchmarks map[string]float64 `json:"benchmarks"`
}

// Store defines the boundary to baseline persistence. It performs no
// comparison logic; only an explicit update writes through it.
type Store interface {
	Load() (map[string]float64, error)
	Save(producer string, records map[string]metric.Record) error
	Exists() bool
}

// FileStore implements Store using a single JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the baseline file.
func (s *FileStore) Path() string { return s.path }

// Exists reports whether a baseline file is present.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load returns the baseline mapping. A missing, empty, or unparsable file
// yields an empty map rather than an error: the first comparison run has no
// baseline and must proceed.
func (s *FileStore) Load() (map[string]float64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]float64{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return map[string]float64{}, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("could not parse baseline file, treating as absent", "path", s.path, "error", err)
		return map[string]float64{}, nil
	}
	if doc.Benchmarks == nil {
		return map[string]float64{}, nil
	}
	return doc.Benchmarks, nil
}

// Save writes the current medians as the new baseline, creating parent
// directories as needed.
func (s *FileStore) Save(producer string, records map[string]metric.Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	doc := Document{
		Version:    SchemaVersion,
		Producer:   producer,
		Benchmarks: make(map[string]float64, len(records)),
	}
	for name, rec := range records {
		doc.Benchmarks[name] = rec.Median
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}
	return os.WriteFile(s.path, data, 0644)
}

// SortedNames returns baseline names in lexical order for display.
func SortedNames(benchmarks map[string]float64) []string {
	names := make([]string, 0, len(benchmarks))
	for name := range benchmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
