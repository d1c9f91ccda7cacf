package repo

import (
	"strings"
	"sync"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository used by handler and service tests.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.SKU != "" && p.SKU == product.SKU {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == product.ID {
			if product.CreatedAt == "" {
				product.CreatedAt = p.CreatedAt
			}
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func matchesProductFilter(p models.Product, f ProductFilter) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Category != "" && f.Category != "All" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinQty != nil && p.Stock < *f.MinQty {
		return false
	}
	if f.MaxQty != nil && p.Stock > *f.MaxQty {
		return false
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (r *InMemoryProductRepository) Filter(f ProductFilter) ([]models.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.Product
	for _, p := range r.products {
		if matchesProductFilter(p, f) {
			filtered = append(filtered, p)
		}
	}

	if f.Offset != nil && *f.Offset > len(filtered) {
		return []models.Product{}, len(filtered), nil
	}

	start := 0
	if f.Offset != nil {
		start = clamp(*f.Offset, 0, len(filtered))
	}
	end := len(filtered)
	if f.Limit != nil && *f.Limit > 0 {
		end = clamp(start+*f.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

func (r *InMemoryProductRepository) AdjustStock(productID int, delta int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == productID {
			if p.Stock+delta < 0 {
				return models.Product{}, ErrInvalidQuantityChange
			}
			r.products[i].Stock += delta
			return r.products[i], nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) LowStock() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Product
	for _, p := range r.products {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

// Clear drops every product. Test helper.
func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
	r.nextID = 1
}
