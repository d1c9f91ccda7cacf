package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
	repo "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
)

func toIngredientResponse(i models.Ingredient) IngredientResponse {
	return IngredientResponse{
		Id:           i.ID,
		Name:         i.Name,
		Unit:         i.Unit,
		CurrentStock: i.CurrentStock,
		MinStock:     i.MinStock,
		LowStock:     i.LowStock(),
	}
}

// CreateIngredientHandler godoc
// @Summary Create a new ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ingredient body IngredientRequest true "Ingredient to add"
// @Success 201 {object} IngredientResponse
// @Failure 400 {object} map[string]string
// @Router /ingredients [post]
func CreateIngredientHandler(w http.ResponseWriter, r *http.Request) {
	var req IngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateIngredient(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	ingredient := models.Ingredient{
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		CreatedAt:    time.Now().Format(time.RFC3339),
		UpdatedAt:    time.Now().Format(time.RFC3339),
	}
	created, err := ingredientRepo.Create(ingredient)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create ingredient: name duplicated", http.StatusConflict)
			return
		}
		http.Error(w, "could not create ingredient", http.StatusInternalServerError)
		return
	}

	audit(r, "ingredient.create", "ingredient", strconv.Itoa(created.ID), created.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toIngredientResponse(created))
}

// GetIngredientsHandler godoc
// @Summary List all ingredients
// @Tags ingredients
// @Produce json
// @Success 200 {array} IngredientResponse
// @Failure 500 {string} string "Internal error"
// @Router /ingredients [get]
// @Security BearerAuth
func GetIngredientsHandler(w http.ResponseWriter, r *http.Request) {
	ingredients, err := ingredientRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch ingredients", http.StatusInternalServerError)
		return
	}
	response := make([]IngredientResponse, len(ingredients))
	for i, ing := range ingredients {
		response[i] = toIngredientResponse(ing)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetIngredientByIDHandler godoc
// @Summary Get ingredient by ID
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} IngredientResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /ingredients/{id} [get]
// @Security BearerAuth
func GetIngredientByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid ingredient ID", http.StatusBadRequest)
		return
	}

	ingredient, err := ingredientRepo.GetByID(id)
	if err != nil {
		if err == repo.ErrIngredientNotFound {
			http.Error(w, "ingredient not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch ingredient", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toIngredientResponse(ingredient))
}

// UpdateIngredientHandler godoc
// @Summary Update an ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Param id path int true "Ingredient ID"
// @Param ingredient body IngredientRequest true "Updated ingredient"
// @Success 200 {object} IngredientResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string "Not found"
// @Router /ingredients/{id} [put]
// @Security BearerAuth
func UpdateIngredientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid ingredient ID", http.StatusBadRequest)
		return
	}

	var req IngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateIngredient(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	ingredient := models.Ingredient{
		ID:           id,
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		UpdatedAt:    time.Now().Format(time.RFC3339),
	}
	updated, err := ingredientRepo.Update(ingredient)
	if err != nil {
		if err == repo.ErrIngredientNotFound {
			http.Error(w, "ingredient not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update ingredient", http.StatusInternalServerError)
		return
	}

	audit(r, "ingredient.update", "ingredient", strconv.Itoa(updated.ID), updated.Name)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toIngredientResponse(updated))
}

// DeleteIngredientHandler godoc
// @Summary Delete an ingredient
// @Tags ingredients
// @Param id path int true "Ingredient ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /ingredients/{id} [delete]
// @Security BearerAuth
func DeleteIngredientHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid ingredient ID", http.StatusBadRequest)
		return
	}
	if err := ingredientRepo.Delete(id); err != nil {
		if err == repo.ErrIngredientNotFound {
			http.Error(w, "ingredient not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete ingredient", http.StatusInternalServerError)
		return
	}

	audit(r, "ingredient.delete", "ingredient", idStr, "")

	w.WriteHeader(http.StatusNoContent)
}

// AdjustIngredientStockHandler godoc
// @Summary Adjust ingredient stock by a delta
// @Tags ingredients
// @Accept json
// @Produce json
// @Param id path int true "Ingredient ID"
// @Param adjustment body QuantityAdjustmentRequest true "Stock delta"
// @Success 200 {object} IngredientResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Stock would go negative"
// @Router /ingredients/{id}/adjust [post]
// @Security BearerAuth
func AdjustIngredientStockHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid ingredient ID", http.StatusBadRequest)
		return
	}

	var req QuantityAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.Delta == 0 {
		http.Error(w, "delta must be non-zero", http.StatusBadRequest)
		return
	}

	updated, err := ingredientRepo.AdjustStock(id, req.Delta)
	if err != nil {
		switch err {
		case repo.ErrIngredientNotFound:
			http.Error(w, "ingredient not found", http.StatusNotFound)
		case repo.ErrInvalidQuantityChange:
			http.Error(w, "stock cannot go negative", http.StatusConflict)
		default:
			http.Error(w, "could not adjust stock", http.StatusInternalServerError)
		}
		return
	}

	if mailer != nil && updated.LowStock() {
		mailer.LowStock(updated.Name, updated.CurrentStock, updated.MinStock)
	}

	audit(r, "ingredient.adjust", "ingredient", idStr, fmt.Sprintf("%+d", req.Delta))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toIngredientResponse(updated))
}
