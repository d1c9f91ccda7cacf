package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/auth"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/checkout"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/pricing"
	repo "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
)

// actorID returns the authenticated caller's user ID, or nil when the token
// carries none.
func actorID(r *http.Request) *int {
	_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
	if err != nil {
		return nil
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil
	}
	id := int(sub)
	return &id
}

// CheckoutHandler godoc
// @Summary Finalize a cart into a completed sale
// @Description Validates payment, allocates the next transaction ID, and
// @Description commits the sale with its stock decrements as one unit. The
// @Description cart session is destroyed on success and kept on failure.
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param payment body CheckoutRequest true "Payment details"
// @Success 201 {object} ReceiptResponse
// @Failure 400 {string} string "Invalid payment"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Insufficient stock"
// @Failure 500 {string} string "Internal error"
// @Router /carts/{id}/checkout [post]
// @Security BearerAuth
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, ok := cartStore.Get(id)
	if !ok {
		http.Error(w, "cart not found", http.StatusNotFound)
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	sale, err := checkoutSvc.Checkout(c, checkout.Request{
		PaymentMethod:    req.PaymentMethod,
		CashReceived:     req.CashReceived,
		PaymentSubMethod: req.PaymentSubMethod,
		StaffID:          actorID(r),
		Customer:         req.Customer,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			http.Error(w, "cart is empty", http.StatusBadRequest)
		case errors.Is(err, checkout.ErrUnknownPaymentMethod):
			http.Error(w, "unknown payment method", http.StatusBadRequest)
		case errors.Is(err, checkout.ErrMissingCashAmount):
			http.Error(w, "cash received is required for cash payments", http.StatusBadRequest)
		case errors.Is(err, checkout.ErrInsufficientCash):
			http.Error(w, "cash received is less than the total", http.StatusBadRequest)
		case errors.Is(err, checkout.ErrMissingSubMethod):
			http.Error(w, "payment sub-method is required for e-payments", http.StatusBadRequest)
		case errors.Is(err, checkout.ErrUnknownSubMethod):
			http.Error(w, "unknown payment sub-method", http.StatusBadRequest)
		case errors.Is(err, repo.ErrInsufficientStock):
			http.Error(w, "insufficient stock for one or more items", http.StatusConflict)
		default:
			http.Error(w, "could not complete checkout", http.StatusInternalServerError)
		}
		return
	}

	// The sale is committed; the session has served its purpose.
	cartStore.Delete(id)

	audit(r, "sale.create", "sale", sale.ID, sale.PaymentMethod)

	if mailer != nil {
		for _, item := range sale.Items {
			p, err := productRepo.GetByID(item.ProductID)
			if err == nil && p.LowStock() {
				mailer.LowStock(p.Name, p.Stock, p.MinStock)
			}
		}
	}

	b := pricing.VATBreakdown(sale.TotalAmount)
	writeJSON(w, http.StatusCreated, ReceiptResponse{
		Sale:      sale,
		Subtotal:  b.Subtotal,
		VATAmount: b.VATAmount,
	})
}
