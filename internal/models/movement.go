package models

// Movement is one stock change for a product: positive delta for restocks
// and imports, negative for sale decrements.
type Movement struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Movement reasons written by the service.
const (
	MovementReasonRestock = "restock"
	MovementReasonSale    = "sale"
	MovementReasonImport  = "import"
	MovementReasonManual  = "manual"
)
