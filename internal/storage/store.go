package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Collection names. The store owns exactly these three; substrate names
// outside this set belong to the settings area.
const (
	Items    = "items"
	Invoices = "invoices"
	Payments = "payments"
)

// Collections lists every collection managed by Init and Clear.
var Collections = []string{Items, Invoices, Payments}

const settingPrefix = "setting."

// Store provides CRUD over the three record collections on top of a
// Substrate. Ids are assigned with a high-entropy generator (UUID) so
// uniqueness is a hard invariant rather than a wall-clock accident.
//
// The store is single-writer by design: calls run to completion and
// there is no cross-process coordination. Two processes sharing one
// substrate race with last-write-wins on whole collections.
type Store struct {
	sub   Substrate
	newID func() string
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the record id generator. Used by tests to
// make ids deterministic.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithClock overrides the wall clock used for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store on the given substrate.
func New(sub Substrate, opts ...Option) *Store {
	s := &Store{
		sub:   sub,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store's current wall-clock time. Services share the
// store's clock so tests can pin every timestamp in one place.
func (s *Store) Now() time.Time {
	return s.now()
}

// NewID returns a fresh unique record id.
func (s *Store) NewID() string {
	return s.newID()
}

// Init ensures every collection exists, writing an empty array for any
// that is absent. Existing data is never touched; calling Init twice in
// a row is a no-op the second time.
func (s *Store) Init() error {
	for _, name := range Collections {
		_, ok, err := s.sub.Read(name)
		if err != nil {
			return fmt.Errorf("init %s: %w", name, err)
		}
		if ok {
			continue
		}
		if err := s.sub.Write(name, []byte("[]")); err != nil {
			return fmt.Errorf("init %s: %w", name, err)
		}
	}
	return nil
}

// GetAll returns every record in the collection in insertion order.
// An absent or undecodable collection reads as empty; decode failure is
// deliberately not propagated.
func (s *Store) GetAll(collection string) ([]Record, error) {
	data, ok, err := s.sub.Read(collection)
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w", collection, err)
	}
	if !ok {
		return []Record{}, nil
	}
	return decodeRecords(data), nil
}

// Get returns the first record with the given id.
func (s *Store) Get(collection, id string) (Record, bool, error) {
	records, err := s.GetAll(collection)
	if err != nil {
		return nil, false, err
	}
	for _, rec := range records {
		if rec.String("id") == id {
			return rec, true, nil
		}
	}
	return nil, false, nil
}

// Save appends a record to the collection and persists it. The record's
// id and createdAt are assigned when absent; the caller's map is not
// mutated. Returns the record's id.
func (s *Store) Save(collection string, rec Record) (string, error) {
	ids, err := s.SaveAll(collection, []Record{rec})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// SaveAll appends records in order with a single collection rewrite.
// This is the batch path for imports: n records cost one read and one
// write instead of n of each.
func (s *Store) SaveAll(collection string, recs []Record) ([]string, error) {
	records, err := s.GetAll(collection)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		stored := rec.Clone()
		if stored.String("id") == "" {
			stored["id"] = s.newID()
		}
		if stored.String("createdAt") == "" {
			stored["createdAt"] = s.now().Format(time.RFC3339)
		}
		ids = append(ids, stored.String("id"))
		records = append(records, stored)
	}

	if err := s.persist(collection, records); err != nil {
		return nil, err
	}
	return ids, nil
}

// Update shallow-merges partial over the first record with a matching
// id: keys present in partial overwrite, all other fields are carried
// over untouched. Nested values are replaced wholesale, not merged
// element-wise - callers updating an invoice's lines must pass the
// complete slice. Reports whether a record matched.
func (s *Store) Update(collection, id string, partial Record) (bool, error) {
	records, err := s.GetAll(collection)
	if err != nil {
		return false, err
	}

	for i, rec := range records {
		if rec.String("id") != id {
			continue
		}
		merged := rec.Clone()
		for k, v := range partial {
			merged[k] = v
		}
		records[i] = merged
		if err := s.persist(collection, records); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Remove deletes every record with the given id and reports whether any
// was removed. Removing an unknown id leaves the collection unchanged.
func (s *Store) Remove(collection, id string) (bool, error) {
	records, err := s.GetAll(collection)
	if err != nil {
		return false, err
	}

	kept := records[:0]
	for _, rec := range records {
		if rec.String("id") != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}
	if err := s.persist(collection, kept); err != nil {
		return false, err
	}
	return true, nil
}

// Clear resets every collection to empty. Settings are not touched.
func (s *Store) Clear() error {
	for _, name := range Collections {
		if err := s.sub.Write(name, []byte("[]")); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}
	return nil
}

// ReadSetting returns the standalone value stored under key.
func (s *Store) ReadSetting(key string) (string, bool, error) {
	data, ok, err := s.sub.Read(settingPrefix + key)
	if err != nil {
		return "", false, fmt.Errorf("read setting %s: %w", key, err)
	}
	return string(data), ok, nil
}

// WriteSetting stores a standalone value under key.
func (s *Store) WriteSetting(key, value string) error {
	if err := s.sub.Write(settingPrefix+key, []byte(value)); err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}

func (s *Store) persist(collection string, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	if err := s.sub.Write(collection, data); err != nil {
		return fmt.Errorf("persist %s: %w", collection, err)
	}
	return nil
}

// decodeRecords parses a stored JSON array. Numbers decode as
// json.Number so rewrites don't reformat untouched values. Corrupt data
// decodes to an empty slice.
func decodeRecords(data []byte) []Record {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []Record
	if err := dec.Decode(&records); err != nil || records == nil {
		return []Record{}
	}
	return records
}
