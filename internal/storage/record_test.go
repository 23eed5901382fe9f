package storage

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecordAmountCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"json number", json.Number("45.50"), "45.5"},
		{"integer", 150, "150"},
		{"float", 99.9, "99.9"},
		{"numeric string", "12.25", "12.25"},
		{"garbage string", "abc", "0"},
		{"garbage number token", json.Number("not-a-number"), "0"},
		{"nil", nil, "0"},
		{"object", map[string]any{}, "0"},
		{"decimal passthrough", decimal.RequireFromString("7.75"), "7.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{"amount": tt.value}
			assert.Equal(t, tt.want, rec.Amount("amount").String())
		})
	}
}

func TestRecordAmountMissingKey(t *testing.T) {
	rec := Record{}
	assert.True(t, rec.Amount("totalAmount").IsZero())
}

func TestRecordInt(t *testing.T) {
	rec := Record{
		"qty":  json.Number("3"),
		"frac": json.Number("2.9"),
		"text": "x",
	}
	assert.Equal(t, 3, rec.Int("qty", 1))
	assert.Equal(t, 1, rec.Int("frac", 1), "non-integer falls back")
	assert.Equal(t, 1, rec.Int("text", 1))
	assert.Equal(t, 1, rec.Int("missing", 1))
}

func TestRecordClone(t *testing.T) {
	rec := Record{"a": "1"}
	cp := rec.Clone()
	cp["a"] = "2"
	cp["b"] = "3"
	assert.Equal(t, "1", rec.String("a"))
	_, ok := rec["b"]
	assert.False(t, ok)
}
