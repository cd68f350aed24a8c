// Package chartdata repairs the data.js file behind a gh-pages benchmark
// chart. When a chart set is renamed the history splits in two; Fix merges
// the old set's entries into the new one so the chart keeps its history.
package chartdata

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
)

const jsWrapper = "window.BENCHMARK_DATA = "

type document struct {
	raw     map[string]json.RawMessage
	entries map[string][]entry
}

type entry struct {
	fields map[string]json.RawMessage
}

func (e entry) commitID() string {
	var commit struct {
		ID string `json:"id"`
	}
	if raw, ok := e.fields["commit"]; ok {
		if err := json.Unmarshal(raw, &commit); err == nil {
			return commit.ID
		}
	}
	return ""
}

func (e entry) date() float64 {
	var d float64
	if raw, ok := e.fields["date"]; ok {
		json.Unmarshal(raw, &d)
	}
	return d
}

func (e entry) MarshalJSON() ([]byte, error)  { return json.Marshal(e.fields) }
func (e *entry) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &e.fields) }

// Fix merges renamed chart sets and sorts every set by date. The input is
// the raw data.js content, with or without the JavaScript wrapper; the
// output always carries the wrapper so it can be published as-is.
func Fix(content []byte, renames map[string]string) ([]byte, error) {
	jsonBytes := content
	if len(content) >= len(jsWrapper) && string(content[:len(jsWrapper)]) == jsWrapper {
		jsonBytes = content[len(jsWrapper):]
	}

	var doc document
	if err := json.Unmarshal(jsonBytes, &doc.raw); err != nil {
		return nil, fmt.Errorf("failed to parse chart data: %w", err)
	}
	doc.entries = make(map[string][]entry)
	if raw, ok := doc.raw["entries"]; ok {
		if err := json.Unmarshal(raw, &doc.entries); err != nil {
			return nil, fmt.Errorf("failed to parse chart entries: %w", err)
		}
	}

	oldNames := make([]string, 0, len(renames))
	for old := range renames {
		oldNames = append(oldNames, old)
	}
	sort.Strings(oldNames)

	for _, oldName := range oldNames {
		newName := renames[oldName]
		oldEntries, ok := doc.entries[oldName]
		if !ok {
			continue
		}

		seen := make(map[string]bool)
		for _, e := range doc.entries[newName] {
			if id := e.commitID(); id != "" {
				seen[id] = true
			}
		}

		merged := 0
		for _, e := range oldEntries {
			id := e.commitID()
			if id == "" || seen[id] {
				continue
			}
			doc.entries[newName] = append(doc.entries[newName], e)
			seen[id] = true
			merged++
		}
		delete(doc.entries, oldName)
		slog.Info("Merged chart set", "from", oldName, "to", newName, "entries", merged)
	}

	for name := range doc.entries {
		list := doc.entries[name]
		sort.SliceStable(list, func(i, j int) bool { return list[i].date() < list[j].date() })
		doc.entries[name] = list
	}

	entriesJSON, err := json.Marshal(doc.entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chart entries: %w", err)
	}
	doc.raw["entries"] = entriesJSON

	out, err := json.MarshalIndent(doc.raw, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode chart data: %w", err)
	}
	return append([]byte(jsWrapper), out...), nil
}
