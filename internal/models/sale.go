package models

// Payment methods and sub-methods accepted at checkout.
const (
	PaymentCash     = "Cash"
	PaymentEPayment = "E-Payment"

	SubMethodGCash = "GCash"
	SubMethodMaya  = "Maya"
)

// SaleStatusCompleted is the only status a sale ever carries. There is no
// void or refund transition.
const SaleStatusCompleted = "Completed"

// Sale is one finished checkout. Date and time are recorded as separate
// fields in the store's local timezone, not as a single instant.
type Sale struct {
	ID               string     `json:"id"`
	Date             string     `json:"date"`
	Time             string     `json:"time"`
	TotalAmount      float64    `json:"total_amount"`
	CashReceived     *float64   `json:"cash_received,omitempty"`
	Change           *float64   `json:"change,omitempty"`
	PaymentMethod    string     `json:"payment_method"`
	PaymentSubMethod string     `json:"payment_sub_method,omitempty"`
	StaffID          *int       `json:"staff_id,omitempty"`
	Customer         string     `json:"customer"`
	Status           string     `json:"status"`
	Items            []SaleItem `json:"items,omitempty"`
}

// SaleItem is one cart line frozen at commit time. ProductName and UnitPrice
// are denormalized snapshots so receipts stay accurate if the product is
// later renamed or repriced.
type SaleItem struct {
	ID          int     `json:"id,omitempty"`
	SaleID      string  `json:"sale_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}
