package pricing_test

import (
	"testing"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/pricing"
	"github.com/stretchr/testify/assert"
)

func TestVATBreakdownDirection(t *testing.T) {
	// 112.00 inclusive at 12% decomposes to 100.00 net + 12.00 tax. The
	// tax is extracted by division, not added on top.
	b := pricing.VATBreakdown(112.00)
	assert.InDelta(t, 100.00, b.Subtotal, 1e-9)
	assert.InDelta(t, 12.00, b.VATAmount, 1e-9)
}

func TestVATBreakdownRoundTrip(t *testing.T) {
	totals := []float64{0, 0.01, 1, 49.99, 112, 130, 999.95, 1234567.89}
	for _, total := range totals {
		b := pricing.VATBreakdown(total)
		assert.InDelta(t, total, b.Subtotal+b.VATAmount, 1e-9, "total %v", total)
		assert.GreaterOrEqual(t, b.Subtotal, 0.0)
		assert.GreaterOrEqual(t, b.VATAmount, 0.0)
	}
}

func TestVATBreakdownDeterministic(t *testing.T) {
	a := pricing.VATBreakdown(123.45)
	b := pricing.VATBreakdown(123.45)
	assert.Equal(t, a, b)
}
