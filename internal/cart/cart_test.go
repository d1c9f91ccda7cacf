package cart_test

import (
	"testing"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/cart"
	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, stock int, price float64) models.Product {
	return models.Product{ID: id, Name: "Iced Latte", Price: price, Stock: stock}
}

func TestAddCapsAtStock(t *testing.T) {
	c := cart.New()
	p := product(1, 3, 85.00)

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Add(p))
	}
	// Fourth single-unit add must be rejected with the cart unchanged.
	err := c.Add(p)
	assert.ErrorIs(t, err, cart.ErrExceedsStock)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddOutOfStock(t *testing.T) {
	c := cart.New()
	err := c.Add(product(1, 0, 85.00))
	assert.ErrorIs(t, err, cart.ErrOutOfStock)
	assert.True(t, c.Empty())
}

func TestAddSnapshotsPriceAndName(t *testing.T) {
	c := cart.New()
	p := product(7, 5, 120.00)
	require.NoError(t, c.Add(p))

	// A later catalog edit must not affect the line already in the cart.
	p.Price = 150.00
	p.Name = "Renamed"
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Iced Latte", lines[0].Name)
	assert.Equal(t, 120.00, lines[0].Price)
}

func TestUpdateQuantityRemovesAtZero(t *testing.T) {
	c := cart.New()
	p := product(1, 10, 50.00)
	require.NoError(t, c.Add(p))
	require.NoError(t, c.UpdateQuantity(1, 1, p.Stock))

	// Dropping by the full quantity removes the line, not a zero-qty line.
	require.NoError(t, c.UpdateQuantity(1, -2, p.Stock))
	assert.True(t, c.Empty())
}

func TestUpdateQuantityChecksLiveStock(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(product(1, 10, 50.00)))

	// Stock has since dropped to 1; the increment is rejected and the
	// quantity is left unchanged.
	err := c.UpdateQuantity(1, 1, 1)
	assert.ErrorIs(t, err, cart.ErrExceedsStock)
	assert.Equal(t, 1, c.TotalItems())
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	c := cart.New()
	assert.ErrorIs(t, c.UpdateQuantity(99, 1, 10), cart.ErrLineNotFound)
}

func TestTotals(t *testing.T) {
	c := cart.New()
	a := models.Product{ID: 1, Name: "A", Price: 50, Stock: 10}
	b := models.Product{ID: 2, Name: "B", Price: 30, Stock: 10}
	require.NoError(t, c.Add(a))
	require.NoError(t, c.Add(a))
	require.NoError(t, c.Add(b))

	assert.InDelta(t, 130.00, c.TotalAmount(), 1e-9)
	assert.Equal(t, 3, c.TotalItems())
}

func TestRemoveAndClear(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(product(1, 5, 10)))
	require.NoError(t, c.Add(models.Product{ID: 2, Name: "B", Price: 5, Stock: 5}))

	c.Remove(1)
	assert.Len(t, c.Lines(), 1)

	c.Clear()
	assert.True(t, c.Empty())
	assert.Zero(t, c.TotalAmount())
}

func TestStoreSessions(t *testing.T) {
	s := cart.NewStore()
	id := s.Create()

	c, ok := s.Get(id)
	require.True(t, ok)
	require.NoError(t, c.Add(product(1, 5, 10)))

	s.Delete(id)
	_, ok = s.Get(id)
	assert.False(t, ok)
}
