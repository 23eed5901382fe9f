// Package payments implements the payment service: recording received
// payments and looking them up by date, plus the passphrase gate that
// guards payment detail views.
//
// Payments are independent of invoices. Nothing links a payment to the
// invoice it settles; day-level reports reconcile the two by date only.
package payments

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/srplumbing/srbill/internal/dates"
	"github.com/srplumbing/srbill/internal/storage"
)

// Common payment methods. Method is an open string; anything the
// business accepts can be recorded.
const (
	MethodCard = "CARD"
	MethodUPI  = "UPI"
)

// Payment statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ErrInvalidAmount rejects payments that are zero or negative.
var ErrInvalidAmount = errors.New("payment amount must be greater than zero")

// Payment is one received payment.
type Payment struct {
	ID        string          `json:"id"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	UPIID     string          `json:"upiId,omitempty"`
	CreatedAt string          `json:"createdAt"`
}

// Service wraps the record store for the payments collection.
type Service struct {
	store *storage.Store
}

// NewService creates a payment service on the given store.
func NewService(st *storage.Store) *Service {
	return &Service{store: st}
}

// Add validates and saves a payment, returning its id. The method is
// upper-cased, status defaults to pending, and an empty date defaults
// to the current timestamp. Amount must be positive; that is the one
// validation the original flows enforce.
func (s *Service) Add(p Payment) (string, error) {
	if !p.Amount.IsPositive() {
		return "", ErrInvalidAmount
	}
	p.Method = strings.ToUpper(strings.TrimSpace(p.Method))
	if p.Status == "" {
		p.Status = StatusPending
	}
	if p.Date == "" {
		p.Date = s.store.Now().Format(time.RFC3339)
	}
	return s.store.Save(storage.Payments, p.record())
}

// List returns every payment in insertion order.
func (s *Service) List() ([]Payment, error) {
	records, err := s.store.GetAll(storage.Payments)
	if err != nil {
		return nil, err
	}
	pays := make([]Payment, 0, len(records))
	for _, rec := range records {
		pays = append(pays, fromRecord(rec))
	}
	return pays, nil
}

// Recent returns the last n payments, most recent first (append order
// reversed, the "recent payments" view of the original UI).
func (s *Service) Recent(n int) ([]Payment, error) {
	pays, err := s.List()
	if err != nil {
		return nil, err
	}
	if n > len(pays) {
		n = len(pays)
	}
	out := make([]Payment, 0, n)
	for i := len(pays) - 1; i >= len(pays)-n; i-- {
		out = append(out, pays[i])
	}
	return out, nil
}

// GetByDate returns every payment whose date falls on the same calendar
// day as date.
func (s *Service) GetByDate(date string) ([]Payment, error) {
	records, err := s.store.GetAll(storage.Payments)
	if err != nil {
		return nil, err
	}
	pays := make([]Payment, 0)
	for _, rec := range records {
		if dates.SameDay(rec.String("date"), date) {
			pays = append(pays, fromRecord(rec))
		}
	}
	return pays, nil
}

func fromRecord(rec storage.Record) Payment {
	return Payment{
		ID:        rec.String("id"),
		Method:    rec.String("method"),
		Amount:    rec.Amount("amount"),
		Status:    rec.String("status"),
		Date:      rec.String("date"),
		Notes:     rec.String("notes"),
		UPIID:     rec.String("upiId"),
		CreatedAt: rec.String("createdAt"),
	}
}

func (p Payment) record() storage.Record {
	// Amount persists as a bare JSON number, not the quoted string
	// decimal.Decimal would marshal to.
	rec := storage.Record{
		"method": p.Method,
		"amount": json.Number(p.Amount.String()),
		"status": p.Status,
		"date":   p.Date,
	}
	if p.ID != "" {
		rec["id"] = p.ID
	}
	if p.Notes != "" {
		rec["notes"] = p.Notes
	}
	if p.UPIID != "" {
		rec["upiId"] = p.UPIID
	}
	if p.CreatedAt != "" {
		rec["createdAt"] = p.CreatedAt
	}
	return rec
}
