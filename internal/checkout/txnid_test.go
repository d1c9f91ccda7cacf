package checkout_test

import (
	"testing"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/checkout"
	"github.com/stretchr/testify/assert"
)

func TestNextTransactionID(t *testing.T) {
	tests := []struct {
		lastID string
		want   string
	}{
		{"", "TXN-0001"},
		{"TXN-0001", "TXN-0002"},
		{"TXN-0042", "TXN-0043"},
		{"TXN-0999", "TXN-1000"},
		{"TXN-9999", "TXN-10000"},
		{"TXN-10000", "TXN-10001"},
		{"garbage", "TXN-0001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, checkout.NextTransactionID(tt.lastID), "last %q", tt.lastID)
	}
}
