// Package catalog maintains the item catalog: the products and services
// a bill can be built from.
//
// Items are a typed view over schemaless store records. Unknown fields
// on imported records survive every operation except Update of the
// field itself.
package catalog

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/srplumbing/srbill/internal/storage"
)

// Item is one catalog entry. Sizes are free-form strings ("1/2", "15")
// because plumbing sizes mix fractions and metric. Photo holds an
// encoded image (data URL or base64), optional.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	SizeInch string          `json:"sizeInch,omitempty"`
	SizeMm   string          `json:"sizeMm,omitempty"`
	ItemCode string          `json:"itemCode,omitempty"`
	Rate     decimal.Decimal `json:"rate"`
	Photo    string          `json:"photo,omitempty"`
}

// Patch describes a partial item update. Nil fields are left untouched.
type Patch struct {
	Name     *string
	SizeInch *string
	SizeMm   *string
	ItemCode *string
	Rate     *decimal.Decimal
	Photo    *string
}

// Service wraps the record store for the items collection.
type Service struct {
	store *storage.Store
}

// NewService creates a catalog service on the given store.
func NewService(st *storage.Store) *Service {
	return &Service{store: st}
}

// Add saves a new item and returns its id. A negative rate is clamped
// to zero; the store itself performs no validation.
func (s *Service) Add(it Item) (string, error) {
	if it.Rate.IsNegative() {
		it.Rate = decimal.Zero
	}
	return s.store.Save(storage.Items, it.record())
}

// List returns every catalog item in insertion order.
func (s *Service) List() ([]Item, error) {
	records, err := s.store.GetAll(storage.Items)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(records))
	for _, rec := range records {
		items = append(items, fromRecord(rec))
	}
	return items, nil
}

// Get returns the item with the given id, reporting found=false for
// unknown ids.
func (s *Service) Get(id string) (Item, bool, error) {
	rec, found, err := s.store.Get(storage.Items, id)
	if err != nil || !found {
		return Item{}, false, err
	}
	return fromRecord(rec), true, nil
}

// Update applies a partial update to the item with the given id.
// Reports whether the item existed.
func (s *Service) Update(id string, p Patch) (bool, error) {
	partial := storage.Record{}
	if p.Name != nil {
		partial["name"] = *p.Name
	}
	if p.SizeInch != nil {
		partial["sizeInch"] = *p.SizeInch
	}
	if p.SizeMm != nil {
		partial["sizeMm"] = *p.SizeMm
	}
	if p.ItemCode != nil {
		partial["itemCode"] = *p.ItemCode
	}
	if p.Rate != nil {
		partial["rate"] = json.Number(p.Rate.String())
	}
	if p.Photo != nil {
		partial["photo"] = *p.Photo
	}
	if len(partial) == 0 {
		_, found, err := s.store.Get(storage.Items, id)
		return found, err
	}
	return s.store.Update(storage.Items, id, partial)
}

// Delete removes the item from the catalog. Invoices keep their line
// snapshots; nothing references the deleted item.
func (s *Service) Delete(id string) (bool, error) {
	return s.store.Remove(storage.Items, id)
}

// fromRecord decodes a stored record into an Item with defensive
// coercion: a missing or unparseable rate reads as zero.
func fromRecord(rec storage.Record) Item {
	return Item{
		ID:       rec.String("id"),
		Name:     rec.String("name"),
		SizeInch: rec.String("sizeInch"),
		SizeMm:   rec.String("sizeMm"),
		ItemCode: rec.String("itemCode"),
		Rate:     rec.Amount("rate"),
		Photo:    rec.String("photo"),
	}
}

func (it Item) record() storage.Record {
	// Amounts persist as bare JSON numbers, not the quoted strings
	// decimal.Decimal would marshal to.
	rec := storage.Record{
		"name": it.Name,
		"rate": json.Number(it.Rate.String()),
	}
	if it.ID != "" {
		rec["id"] = it.ID
	}
	if it.SizeInch != "" {
		rec["sizeInch"] = it.SizeInch
	}
	if it.SizeMm != "" {
		rec["sizeMm"] = it.SizeMm
	}
	if it.ItemCode != "" {
		rec["itemCode"] = it.ItemCode
	}
	if it.Photo != "" {
		rec["photo"] = it.Photo
	}
	return rec
}
