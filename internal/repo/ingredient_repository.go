package repo

import models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"

// IngredientRepository defines the interface for raw-material stock keeping.
// Ingredient stock is only ever changed through these operations; checkouts
// never touch it.
type IngredientRepository interface {
	Create(ingredient models.Ingredient) (models.Ingredient, error)
	GetAll() ([]models.Ingredient, error)
	GetByID(id int) (models.Ingredient, error)
	Update(ingredient models.Ingredient) (models.Ingredient, error)
	Delete(id int) error
	AdjustStock(id int, delta int) (models.Ingredient, error)
}
