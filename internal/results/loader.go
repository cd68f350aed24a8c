package results

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"benchgate/internal/metric"
)

// LoadDir parses every result file in dir whose name starts with the given
// framework prefix. Files that fail to parse or have an unrecognized shape
// are logged and skipped; the batch continues. The second return value is
// the number of skipped files.
func LoadDir(dir, framework string) (map[string]metric.Record, int, error) {
	pattern := filepath.Join(dir, framework+"*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid results pattern %q: %w", pattern, err)
	}
	sort.Strings(files)

	records := make(map[string]metric.Record)
	skipped := 0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("could not read result file", "path", path, "error", err)
			skipped++
			continue
		}
		rec, err := Parse(data, Stem(path))
		if err != nil {
			slog.Warn("could not parse result file", "path", path, "error", err)
			skipped++
			continue
		}
		records[rec.Name] = rec
	}
	return records, skipped, nil
}

// SortedNames returns the record names in lexical order. Every user-visible
// iteration goes through this so identical inputs yield identical output.
func SortedNames(records map[string]metric.Record) []string {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
