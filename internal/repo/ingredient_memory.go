package repo

import (
	"sync"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

type InMemoryIngredientRepository struct {
	mu          sync.Mutex
	ingredients []models.Ingredient
	nextID      int
}

func NewInMemoryIngredientRepository() *InMemoryIngredientRepository {
	return &InMemoryIngredientRepository{
		ingredients: []models.Ingredient{},
		nextID:      1,
	}
}

func (r *InMemoryIngredientRepository) Create(ing models.Ingredient) (models.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ing.ID = r.nextID
	r.nextID++
	r.ingredients = append(r.ingredients, ing)
	return ing, nil
}

func (r *InMemoryIngredientRepository) GetAll() ([]models.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Ingredient, len(r.ingredients))
	copy(out, r.ingredients)
	return out, nil
}

func (r *InMemoryIngredientRepository) GetByID(id int) (models.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ing := range r.ingredients {
		if ing.ID == id {
			return ing, nil
		}
	}
	return models.Ingredient{}, ErrIngredientNotFound
}

func (r *InMemoryIngredientRepository) Update(ing models.Ingredient) (models.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.ingredients {
		if existing.ID == ing.ID {
			if ing.CreatedAt == "" {
				ing.CreatedAt = existing.CreatedAt
			}
			r.ingredients[i] = ing
			return ing, nil
		}
	}
	return models.Ingredient{}, ErrIngredientNotFound
}

func (r *InMemoryIngredientRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ing := range r.ingredients {
		if ing.ID == id {
			r.ingredients = append(r.ingredients[:i], r.ingredients[i+1:]...)
			return nil
		}
	}
	return ErrIngredientNotFound
}

func (r *InMemoryIngredientRepository) AdjustStock(id int, delta int) (models.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ing := range r.ingredients {
		if ing.ID == id {
			if ing.CurrentStock+delta < 0 {
				return models.Ingredient{}, ErrInvalidQuantityChange
			}
			r.ingredients[i].CurrentStock += delta
			return r.ingredients[i], nil
		}
	}
	return models.Ingredient{}, ErrIngredientNotFound
}

// Clear drops every ingredient. Test helper.
func (r *InMemoryIngredientRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ingredients = []models.Ingredient{}
	r.nextID = 1
}
