// Package cart holds the working set of an active checkout session.
//
// A cart lives only in memory, is owned by exactly one terminal session, and
// is destroyed on successful checkout or explicit clear. Lines snapshot the
// product's name, price and image at add time so the receipt reflects what
// the cashier saw, even if the product is edited mid-session.
package cart

import (
	"errors"
	"sync"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

var (
	// ErrOutOfStock rejects adding a product with no stock left.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrExceedsStock rejects a quantity above the product's current stock.
	ErrExceedsStock = errors.New("quantity exceeds available stock")
	// ErrLineNotFound means the product is not in the cart.
	ErrLineNotFound = errors.New("product not in cart")
)

// Line is one aggregated (product, quantity) pair.
type Line struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart aggregates lines in insertion order.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart {
	return &Cart{lines: []Line{}}
}

// Add puts one unit of the product into the cart, incrementing an existing
// line if present. The product carries its live stock count; the add is
// rejected when stock is exhausted or the increment would exceed it.
func (c *Cart) Add(p models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p.Stock <= 0 {
		return ErrOutOfStock
	}
	for i, l := range c.lines {
		if l.ProductID == p.ID {
			if l.Quantity+1 > p.Stock {
				return ErrExceedsStock
			}
			c.lines[i].Quantity++
			return nil
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	})
	return nil
}

// UpdateQuantity applies a delta to a line. A resulting quantity of zero or
// less removes the line. Increments are checked against currentStock, the
// product's stock as re-read by the caller, not the add-time snapshot.
func (c *Cart) UpdateQuantity(productID, delta, currentStock int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, l := range c.lines {
		if l.ProductID != productID {
			continue
		}
		newQuantity := l.Quantity + delta
		if newQuantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
		if delta > 0 && newQuantity > currentStock {
			return ErrExceedsStock
		}
		c.lines[i].Quantity = newQuantity
		return nil
	}
	return ErrLineNotFound
}

// Remove drops the line unconditionally.
func (c *Cart) Remove(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = []Line{}
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalAmount is the VAT-inclusive sum of price × quantity over all lines.
func (c *Cart) TotalAmount() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, l := range c.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// TotalItems is the sum of quantities over all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var count int
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}
