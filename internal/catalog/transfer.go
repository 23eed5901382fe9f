package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/srplumbing/srbill/internal/storage"
)

// ErrNotArray rejects import payloads whose top level is not a JSON
// array. Validation happens before anything is written, so a bad
// payload never leaves the collection partially imported.
var ErrNotArray = fmt.Errorf("import payload must be a JSON array of items")

// ExportJSON renders the raw item records as a pretty-printed JSON
// array. Raw records, not typed items, so fields this version doesn't
// know about still make the round trip.
func (s *Service) ExportJSON() ([]byte, error) {
	records, err := s.store.GetAll(storage.Items)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export items: %w", err)
	}
	return data, nil
}

// ImportJSON appends the items in data to the catalog and returns how
// many were imported. Every imported record gets a freshly generated id
// so an exported file can be re-imported without colliding with
// existing records. The whole payload is validated first and applied as
// one batch write.
func (s *Service) ImportJSON(data []byte) (int, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, fmt.Errorf("import items: %w", err)
	}
	entries, ok := payload.([]any)
	if !ok {
		return 0, ErrNotArray
	}

	records := make([]storage.Record, 0, len(entries))
	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			return 0, fmt.Errorf("import items: entry %d is not an object", i)
		}
		rec := storage.Record(obj)
		rec["id"] = s.store.NewID()
		records = append(records, rec)
	}

	if _, err := s.store.SaveAll(storage.Items, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
