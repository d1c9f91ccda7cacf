package checkout_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/cart"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/checkout"
	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
	repo "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	products  *repo.InMemoryProductRepository
	movements *repo.InMemoryMovementRepository
	sales     *repo.InMemorySaleRepository
	svc       *checkout.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	products := repo.NewInMemoryProductRepository()
	movements := repo.NewInMemoryMovementRepository()
	sales := repo.NewInMemorySaleRepository(products, movements)
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	return &fixture{
		products:  products,
		movements: movements,
		sales:     sales,
		svc:       checkout.NewService(sales, loc),
	}
}

func (f *fixture) seed(t *testing.T, name string, price float64, stock int) models.Product {
	t.Helper()
	p, err := f.products.Create(models.Product{Name: name, Price: price, Stock: stock, MinStock: 1})
	require.NoError(t, err)
	return p
}

func cashPayment(amount float64) checkout.Request {
	return checkout.Request{PaymentMethod: models.PaymentCash, CashReceived: &amount}
}

func TestCheckoutTotalsConsistency(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, "Americano", 50, 10)
	b := f.seed(t, "Croissant", 30, 10)

	c := cart.New()
	require.NoError(t, c.Add(a))
	require.NoError(t, c.Add(a))
	require.NoError(t, c.Add(b))

	sale, err := f.svc.Checkout(c, cashPayment(200))
	require.NoError(t, err)

	assert.InDelta(t, 130.00, sale.TotalAmount, 1e-9)
	var itemTotal float64
	for _, item := range sale.Items {
		itemTotal += item.Subtotal
	}
	assert.InDelta(t, sale.TotalAmount, itemTotal, 1e-9)
	require.NotNil(t, sale.Change)
	assert.InDelta(t, 70.00, *sale.Change, 1e-9)
	assert.Equal(t, models.SaleStatusCompleted, sale.Status)
}

func TestCheckoutTransactionIDSequence(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, "Espresso", 60, 100)

	for i, want := range []string{"TXN-0001", "TXN-0002", "TXN-0003"} {
		c := cart.New()
		require.NoError(t, c.Add(p))
		sale, err := f.svc.Checkout(c, cashPayment(100))
		require.NoError(t, err, "checkout %d", i)
		assert.Equal(t, want, sale.ID)
	}
}

func TestCheckoutConcurrentTransactionIDsAreDistinct(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, "Espresso", 60, 100)

	// Two checkouts racing on separate carts must never allocate the same
	// transaction id: the repository reads the last id and assigns the next
	// one inside the same unit of work as the insert.
	const n = 8
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := cart.New()
			if err := c.Add(p); err != nil {
				t.Error(err)
				return
			}
			sale, err := f.svc.Checkout(c, cashPayment(100))
			if err != nil {
				t.Error(err)
				return
			}
			ids <- sale.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "transaction id %s allocated twice", id)
		seen[id] = true
	}
	require.Len(t, seen, n)
	for i := 1; i <= n; i++ {
		assert.Contains(t, seen, fmt.Sprintf("TXN-%04d", i))
	}
}

func TestCheckoutCustomerLabel(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, "Latte", 120, 5)

	c := cart.New()
	require.NoError(t, c.Add(p))
	sale, err := f.svc.Checkout(c, cashPayment(200))
	require.NoError(t, err)
	assert.Equal(t, "Walk-in Customer", sale.Customer)

	c = cart.New()
	require.NoError(t, c.Add(p))
	req := cashPayment(200)
	req.Customer = "Maria Santos"
	sale, err = f.svc.Checkout(c, req)
	require.NoError(t, err)
	assert.Equal(t, "Maria Santos", sale.Customer)
}

func TestCheckoutDecrementsStock(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, "Milk Tea", 95, 10)

	c := cart.New()
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Add(p))
	}
	_, err := f.svc.Checkout(c, cashPayment(300))
	require.NoError(t, err)

	got, err := f.products.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)

	movements, total, err := f.movements.GetByProductID(p.ID, nil, nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, -3, movements[0].Delta)
	assert.Equal(t, models.MovementReasonSale, movements[0].Reason)
}

func TestCheckoutInsufficientCash(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, "Combo Meal", 100, 10)

	c := cart.New()
	require.NoError(t, c.Add(p))

	_, err := f.svc.Checkout(c, cashPayment(99.99))
	assert.ErrorIs(t, err, checkout.ErrInsufficientCash)

	// No sale, no stock decrement, no movement.
	sales, err := f.sales.GetAll(nil)
	require.NoError(t, err)
	assert.Empty(t, sales)
	got, _ := f.products.GetByID(p.ID)
	assert.Equal(t, 10, got.Stock)
	_, total, _ := f.movements.GetByProductID(p.ID, nil, nil, nil, nil)
	assert.Zero(t, total)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Checkout(cart.New(), cashPayment(100))
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
}

func TestCheckoutEPaymentRequiresSubMethod(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, "Latte", 120, 5)

	c := cart.New()
	require.NoError(t, c.Add(p))

	_, err := f.svc.Checkout(c, checkout.Request{PaymentMethod: models.PaymentEPayment})
	assert.ErrorIs(t, err, checkout.ErrMissingSubMethod)

	_, err = f.svc.Checkout(c, checkout.Request{PaymentMethod: models.PaymentEPayment, PaymentSubMethod: "PayPal"})
	assert.ErrorIs(t, err, checkout.ErrUnknownSubMethod)

	sale, err := f.svc.Checkout(c, checkout.Request{PaymentMethod: models.PaymentEPayment, PaymentSubMethod: models.SubMethodGCash})
	require.NoError(t, err)
	assert.Equal(t, models.SubMethodGCash, sale.PaymentSubMethod)
	assert.Nil(t, sale.CashReceived)
	assert.Nil(t, sale.Change)
}

func TestCheckoutUnknownPaymentMethod(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, "Latte", 120, 5)
	c := cart.New()
	require.NoError(t, c.Add(p))

	_, err := f.svc.Checkout(c, checkout.Request{PaymentMethod: "Barter"})
	assert.ErrorIs(t, err, checkout.ErrUnknownPaymentMethod)
}

func TestCheckoutInsufficientStockAbortsAtomically(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, "A", 10, 5)
	b := f.seed(t, "B", 10, 5)

	c := cart.New()
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Add(a))
	}
	require.NoError(t, c.Add(b))

	// Stock of A drops behind the cart's back; commit-time check must fail
	// the whole sale without touching B.
	_, err := f.products.AdjustStock(a.ID, -3)
	require.NoError(t, err)

	_, err = f.svc.Checkout(c, cashPayment(100))
	assert.ErrorIs(t, err, repo.ErrInsufficientStock)

	gotA, _ := f.products.GetByID(a.ID)
	gotB, _ := f.products.GetByID(b.ID)
	assert.Equal(t, 2, gotA.Stock)
	assert.Equal(t, 5, gotB.Stock)
	sales, _ := f.sales.GetAll(nil)
	assert.Empty(t, sales)
}

func TestCheckoutRecordsStaffAndSplitTimestamp(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, "Latte", 120, 5)

	c := cart.New()
	require.NoError(t, c.Add(p))

	staff := 42
	req := cashPayment(200)
	req.StaffID = &staff
	sale, err := f.svc.Checkout(c, req)
	require.NoError(t, err)

	require.NotNil(t, sale.StaffID)
	assert.Equal(t, 42, *sale.StaffID)
	// Date and time are separate store-local fields, not one instant.
	_, err = time.Parse("2006-01-02", sale.Date)
	assert.NoError(t, err)
	_, err = time.Parse("15:04", sale.Time)
	assert.NoError(t, err)
}
