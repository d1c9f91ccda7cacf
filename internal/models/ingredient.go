package models

// Ingredient units of measure accepted by the API.
const (
	UnitPieces   = "pcs"
	UnitGram     = "g"
	UnitKilogram = "kg"
	UnitMillilit = "ml"
	UnitLiter    = "L"
	UnitPack     = "pack"
)

// ValidUnit reports whether u is one of the accepted units of measure.
func ValidUnit(u string) bool {
	switch u {
	case UnitPieces, UnitGram, UnitKilogram, UnitMillilit, UnitLiter, UnitPack:
		return true
	}
	return false
}

// Ingredient is a raw material tracked for manual stock keeping. Ingredients
// are not linked to products and are never decremented by a sale.
type Ingredient struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

func (i Ingredient) LowStock() bool {
	return i.CurrentStock <= i.MinStock
}
