// Package checkout converts a cart into a persisted sale.
package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/cart"
	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
	repo "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
)

// Validation errors surfaced before any persistence happens.
var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrMissingCashAmount    = errors.New("cash received is required for cash payment")
	ErrInsufficientCash     = errors.New("cash received is less than the total amount")
	ErrMissingSubMethod     = errors.New("payment sub-method is required for e-payment")
	ErrUnknownSubMethod     = errors.New("unknown payment sub-method")
)

// Request carries the payment details for one checkout.
type Request struct {
	PaymentMethod    string
	CashReceived     *float64
	PaymentSubMethod string
	StaffID          *int
	Customer         string
}

// defaultCustomer labels sales with no named customer.
const defaultCustomer = "Walk-in Customer"

// Service finalizes checkouts. Timestamps are taken in the store's timezone
// so every terminal records the same local date and time fields.
type Service struct {
	sales repo.SaleRepository
	loc   *time.Location
	now   func() time.Time
}

func NewService(sales repo.SaleRepository, loc *time.Location) *Service {
	return &Service{sales: sales, loc: loc, now: time.Now}
}

// validate runs every precondition check. No side effects.
func validate(c *cart.Cart, req Request, total float64) error {
	if c.Empty() {
		return ErrEmptyCart
	}
	switch req.PaymentMethod {
	case models.PaymentCash:
		if req.CashReceived == nil {
			return ErrMissingCashAmount
		}
		if *req.CashReceived < total {
			return ErrInsufficientCash
		}
	case models.PaymentEPayment:
		if req.PaymentSubMethod == "" {
			return ErrMissingSubMethod
		}
		if req.PaymentSubMethod != models.SubMethodGCash && req.PaymentSubMethod != models.SubMethodMaya {
			return ErrUnknownSubMethod
		}
	default:
		return ErrUnknownPaymentMethod
	}
	return nil
}

// Checkout validates the request and persists the sale header, its items,
// and the stock decrements as one atomic unit. The transaction id is
// allocated by the repository inside that unit, so concurrent checkouts
// cannot collide. On success it returns the receipt-ready sale; the caller
// destroys the cart session only after that.
func (s *Service) Checkout(c *cart.Cart, req Request) (models.Sale, error) {
	total := c.TotalAmount()
	if err := validate(c, req, total); err != nil {
		return models.Sale{}, err
	}

	customer := req.Customer
	if customer == "" {
		customer = defaultCustomer
	}

	now := s.now().In(s.loc)
	sale := models.Sale{
		Date:          now.Format("2006-01-02"),
		Time:          now.Format("15:04"),
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
		StaffID:       req.StaffID,
		Customer:      customer,
		Status:        models.SaleStatusCompleted,
	}

	switch req.PaymentMethod {
	case models.PaymentCash:
		change := *req.CashReceived - total
		sale.CashReceived = req.CashReceived
		sale.Change = &change
	case models.PaymentEPayment:
		sale.PaymentSubMethod = req.PaymentSubMethod
	}

	lines := c.Lines()
	items := make([]models.SaleItem, len(lines))
	for i, l := range lines {
		items[i] = models.SaleItem{
			ProductID:   l.ProductID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.Price,
			Subtotal:    l.Price * float64(l.Quantity),
		}
	}

	created, err := s.sales.Create(sale, items, NextTransactionID)
	if err != nil {
		return models.Sale{}, fmt.Errorf("persist sale: %w", err)
	}
	return created, nil
}
