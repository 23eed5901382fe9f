// Package invoices implements the invoice service: building invoices
// from a cart, assigning invoice numbers, and date-based lookup.
package invoices

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/srplumbing/srbill/internal/dates"
	"github.com/srplumbing/srbill/internal/storage"
)

// Invoice is one saved bill. TotalAmount always equals the sum of line
// totals at write time; readers (the report engine in particular) trust
// the stored value and never recompute it from lines.
type Invoice struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Lines       []Line          `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   string          `json:"createdAt"`
}

// Service wraps the record store for the invoices collection.
type Service struct {
	store *storage.Store
}

// NewService creates an invoice service on the given store.
func NewService(st *storage.Store) *Service {
	return &Service{store: st}
}

// Checkout builds an invoice from the cart for the given calendar day.
// The cart is left untouched; callers clear it after a successful Add.
// An empty or unparseable date falls back to today.
func (s *Service) Checkout(cart *Cart, date string) Invoice {
	if _, ok := dates.Day(date); !ok {
		date = dates.Format(s.store.Now())
	}
	return Invoice{
		Date:        date,
		Lines:       cart.Lines(),
		TotalAmount: cart.Total(),
	}
}

// Add persists an invoice and returns its id. When absent, the id is
// assigned from the invoice number sequence, the date defaults to
// today, and createdAt to now. A provided TotalAmount is kept only if
// it matches the line sum; otherwise it is recomputed so the stored
// invariant holds on every write path.
func (s *Service) Add(inv Invoice) (string, error) {
	if inv.Date == "" {
		inv.Date = dates.Format(s.store.Now())
	}

	sum := decimal.Zero
	for _, l := range inv.Lines {
		sum = sum.Add(l.Total)
	}
	if !inv.TotalAmount.Equal(sum) {
		inv.TotalAmount = sum
	}

	if inv.ID == "" {
		id, err := s.nextNumber(inv.Date)
		if err != nil {
			return "", err
		}
		inv.ID = id
	}

	return s.store.Save(storage.Invoices, inv.record())
}

// List returns every invoice in insertion order.
func (s *Service) List() ([]Invoice, error) {
	records, err := s.store.GetAll(storage.Invoices)
	if err != nil {
		return nil, err
	}
	invs := make([]Invoice, 0, len(records))
	for _, rec := range records {
		invs = append(invs, fromRecord(rec))
	}
	return invs, nil
}

// ListRecent returns every invoice ordered most recent first by
// createdAt. Ties keep insertion order.
func (s *Service) ListRecent() ([]Invoice, error) {
	invs, err := s.List()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(invs, func(i, j int) bool {
		return invs[i].CreatedAt > invs[j].CreatedAt
	})
	return invs, nil
}

// Get returns the invoice with the given id.
func (s *Service) Get(id string) (Invoice, bool, error) {
	rec, found, err := s.store.Get(storage.Invoices, id)
	if err != nil || !found {
		return Invoice{}, false, err
	}
	return fromRecord(rec), true, nil
}

// GetByDate returns every invoice whose date falls on the same calendar
// day as date.
func (s *Service) GetByDate(date string) ([]Invoice, error) {
	records, err := s.store.GetAll(storage.Invoices)
	if err != nil {
		return nil, err
	}
	invs := make([]Invoice, 0)
	for _, rec := range records {
		if dates.SameDay(rec.String("date"), date) {
			invs = append(invs, fromRecord(rec))
		}
	}
	return invs, nil
}

// Update shallow-merges partial over the stored invoice. Lines, when
// present in partial, replace the stored slice wholesale - pass the
// complete slice, not a delta.
func (s *Service) Update(id string, partial storage.Record) (bool, error) {
	return s.store.Update(storage.Invoices, id, partial)
}

// Delete removes the invoice, reporting whether it existed.
func (s *Service) Delete(id string) (bool, error) {
	return s.store.Remove(storage.Invoices, id)
}

// nextNumber assigns the next invoice number, format
// INV-YYYYMMDD-NNNNNN. The day segment comes from the invoice's logical
// date (a backdated invoice numbers under its own day, not the day it
// was keyed in) and the suffix from a persisted monotonic sequence, so
// two invoices created in the same instant can never collide.
func (s *Service) nextNumber(date string) (string, error) {
	day, ok := dates.Day(date)
	if !ok {
		day = s.store.Now()
	}

	seq, err := s.nextSeq()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%s-%06d", day.Format("20060102"), seq%1000000), nil
}

const seqKey = "invoice_seq"

func (s *Service) nextSeq() (int64, error) {
	raw, ok, err := s.store.ReadSetting(seqKey)
	if err != nil {
		return 0, err
	}
	var seq int64
	if ok {
		fmt.Sscanf(raw, "%d", &seq)
	}
	seq++
	if err := s.store.WriteSetting(seqKey, fmt.Sprintf("%d", seq)); err != nil {
		return 0, err
	}
	return seq, nil
}

func fromRecord(rec storage.Record) Invoice {
	inv := Invoice{
		ID:          rec.String("id"),
		Date:        rec.String("date"),
		TotalAmount: rec.Amount("totalAmount"),
		CreatedAt:   rec.String("createdAt"),
	}
	raw, _ := rec["items"].([]any)
	inv.Lines = make([]Line, 0, len(raw))
	for _, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		lr := storage.Record(obj)
		inv.Lines = append(inv.Lines, Line{
			ItemID:   lr.String("itemId"),
			Name:     lr.String("name"),
			SizeInch: lr.String("sizeInch"),
			SizeMm:   lr.String("sizeMm"),
			ItemCode: lr.String("itemCode"),
			Rate:     lr.Amount("rate"),
			Quantity: lr.Int("quantity", 1),
			Total:    lr.Amount("total"),
		})
	}
	return inv
}

func (inv Invoice) record() storage.Record {
	lines := make([]any, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		// Amounts persist as bare JSON numbers, not the quoted
		// strings decimal.Decimal would marshal to.
		lr := storage.Record{
			"name":     l.Name,
			"rate":     json.Number(l.Rate.String()),
			"quantity": l.Quantity,
			"total":    json.Number(l.Total.String()),
		}
		if l.ItemID != "" {
			lr["itemId"] = l.ItemID
		}
		if l.SizeInch != "" {
			lr["sizeInch"] = l.SizeInch
		}
		if l.SizeMm != "" {
			lr["sizeMm"] = l.SizeMm
		}
		if l.ItemCode != "" {
			lr["itemCode"] = l.ItemCode
		}
		lines = append(lines, lr)
	}

	rec := storage.Record{
		"date":        inv.Date,
		"items":       lines,
		"totalAmount": json.Number(inv.TotalAmount.String()),
	}
	if inv.ID != "" {
		rec["id"] = inv.ID
	}
	if inv.CreatedAt != "" {
		rec["createdAt"] = inv.CreatedAt
	}
	return rec
}
