package invoices

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/srplumbing/srbill/internal/catalog"
)

// Line is one invoice line: an item snapshot plus quantity and derived
// total. Snapshots copy the item by value, so later catalog edits or
// deletions never reach back into saved invoices.
type Line struct {
	ItemID   string          `json:"itemId,omitempty"`
	Name     string          `json:"name"`
	SizeInch string          `json:"sizeInch,omitempty"`
	SizeMm   string          `json:"sizeMm,omitempty"`
	ItemCode string          `json:"itemCode,omitempty"`
	Rate     decimal.Decimal `json:"rate"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// NewLine snapshots a catalog item as a line with quantity 1.
func NewLine(it catalog.Item) Line {
	return Line{
		ItemID:   it.ID,
		Name:     it.Name,
		SizeInch: it.SizeInch,
		SizeMm:   it.SizeMm,
		ItemCode: it.ItemCode,
		Rate:     it.Rate,
		Quantity: 1,
		Total:    it.Rate,
	}
}

// Cart is the in-memory pre-invoice state of one billing session. It is
// never persisted; a cart lost to a crash is accepted UX scope. Not
// safe for concurrent use, matching the single-session model.
type Cart struct {
	lines []Line
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddItem snapshots the item into the cart with quantity 1.
func (c *Cart) AddItem(it catalog.Item) {
	c.lines = append(c.lines, NewLine(it))
}

// SetQuantity changes the quantity of line i, clamped to at least 1,
// and re-derives the line total.
func (c *Cart) SetQuantity(i, quantity int) error {
	if err := c.check(i); err != nil {
		return err
	}
	if quantity < 1 {
		quantity = 1
	}
	c.lines[i].Quantity = quantity
	c.lines[i].Total = c.lines[i].Rate.Mul(decimal.NewFromInt(int64(quantity)))
	return nil
}

// SetRate overrides the rate of line i (negotiated pricing) and
// re-derives the line total. Negative rates clamp to zero.
func (c *Cart) SetRate(i int, rate decimal.Decimal) error {
	if err := c.check(i); err != nil {
		return err
	}
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	c.lines[i].Rate = rate
	c.lines[i].Total = rate.Mul(decimal.NewFromInt(int64(c.lines[i].Quantity)))
	return nil
}

// Remove deletes line i from the cart.
func (c *Cart) Remove(i int) error {
	if err := c.check(i); err != nil {
		return err
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the cart's lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total returns the sum of line totals.
func (c *Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Total)
	}
	return sum
}

func (c *Cart) check(i int) error {
	if i < 0 || i >= len(c.lines) {
		return fmt.Errorf("cart line %d out of range (cart has %d lines)", i, len(c.lines))
	}
	return nil
}
