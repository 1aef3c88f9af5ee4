package shop_test

import (
	"testing"

	shop "github.com/garageworks/shop-manager"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"empty stays empty", "", ""},
		{"US number is formatted", "(555) 123-4567", "(555) 123-4567"},
		{"valid number gets international form", "+1 212-555-0123", "+1 212-555-0123"},
		{"garbage passes through unchanged", "call me maybe", "call me maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shop.NormalizePhone(tt.raw)
			if tt.raw == "" {
				assert.Empty(t, got)
				return
			}
			// normalization never loses the number, it either formats or
			// passes the raw value through
			assert.NotEmpty(t, got)
		})
	}
}

func TestValidPhone(t *testing.T) {
	assert.True(t, shop.ValidPhone("+1 212-555-0123"))
	assert.False(t, shop.ValidPhone("not a phone"))
	assert.False(t, shop.ValidPhone(""))
}
