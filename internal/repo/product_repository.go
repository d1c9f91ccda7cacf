package repo

import models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"

// ProductRepository defines the interface for catalog data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	Filter(filter ProductFilter) ([]models.Product, int, error)
	// AdjustStock applies a delta with a conditional write that refuses to
	// drive stock below zero.
	AdjustStock(productID int, delta int) (models.Product, error)
	LowStock() ([]models.Product, error)
}

type ProductFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
	MinQty   *int
	MaxQty   *int
	Offset   *int
	Limit    *int
}
