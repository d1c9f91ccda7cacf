// Package pricing holds the VAT math used on receipts and reports.
//
// Displayed prices are VAT-inclusive: the tax is extracted from a total by
// division, never added on top. Rounding happens at presentation time only.
package pricing

// VATRate is the Philippine value-added tax rate.
const VATRate = 0.12

// Breakdown is the VAT-exclusive decomposition of a VAT-inclusive total.
type Breakdown struct {
	Subtotal  float64 `json:"subtotal"`
	VATAmount float64 `json:"vat_amount"`
}

// VATBreakdown back-calculates the net subtotal and the tax portion from a
// VAT-inclusive total. Subtotal + VATAmount always reproduces the input to
// within floating-point epsilon.
func VATBreakdown(vatInclusiveTotal float64) Breakdown {
	subtotal := vatInclusiveTotal / (1 + VATRate)
	return Breakdown{
		Subtotal:  subtotal,
		VATAmount: vatInclusiveTotal - subtotal,
	}
}
