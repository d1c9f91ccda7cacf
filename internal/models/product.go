package models

// Product represents a sellable item in the catalog. Price is VAT-inclusive,
// which is the pricing convention everywhere in this system.
type Product struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Stock     int     `json:"stock"`
	MinStock  int     `json:"min_stock"`
	SKU       string  `json:"sku"`
	Image     string  `json:"image,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// LowStock reports whether the product is at or below its minimum stock
// threshold. Informational only; it never blocks a sale on its own.
func (p Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
