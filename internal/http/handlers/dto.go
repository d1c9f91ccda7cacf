package handlers

import models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"

type ProductRequest struct {
	Id       int     `json:"id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"min_stock"`
	SKU      string  `json:"sku"`
	Image    string  `json:"image,omitempty"`
}

type ProductResponse struct {
	Id       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"min_stock"`
	SKU      string  `json:"sku"`
	Image    string  `json:"image,omitempty"`
	LowStock bool    `json:"low_stock,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type RestockRequest struct {
	Quantity int `json:"quantity"`
}

type IngredientRequest struct {
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
}

type IngredientResponse struct {
	Id           int    `json:"id"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
	LowStock     bool   `json:"low_stock,omitempty"`
}

type QuantityAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type MovementResponse struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at"`
}

type MovementsSearchResult struct {
	Data []MovementResponse `json:"data"`
	Meta Meta               `json:"meta,omitempty"`
}

type CartCreatedResult struct {
	CartID string `json:"cart_id"`
}

type CartItemRequest struct {
	ProductID int `json:"product_id"`
}

type CartLineResponse struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type CartResponse struct {
	CartID      string             `json:"cart_id"`
	Items       []CartLineResponse `json:"items"`
	TotalAmount float64            `json:"total_amount"`
	TotalItems  int                `json:"total_items"`
}

type CheckoutRequest struct {
	PaymentMethod    string   `json:"payment_method"`
	CashReceived     *float64 `json:"cash_received,omitempty"`
	PaymentSubMethod string   `json:"payment_sub_method,omitempty"`
	Customer         string   `json:"customer,omitempty"`
}

// ReceiptResponse is the finished sale plus its VAT breakdown, shaped for
// receipt rendering.
type ReceiptResponse struct {
	Sale      models.Sale `json:"sale"`
	Subtotal  float64     `json:"subtotal"`
	VATAmount float64     `json:"vat_amount"`
}

type SalesSearchResult struct {
	Data []models.Sale `json:"data"`
	Meta Meta          `json:"meta,omitempty"`
}

type SummaryResponse struct {
	TotalSales        float64 `json:"total_sales"`
	Transactions      int     `json:"transactions"`
	AverageOrderValue float64 `json:"average_order_value"`
	Subtotal          float64 `json:"subtotal"`
	VATAmount         float64 `json:"vat_amount"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RegisterAsAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type UserResponse struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type AuditSearchResult struct {
	Data []models.AuditEntry `json:"data"`
	Meta Meta                `json:"meta,omitempty"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
