package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/cart"
	repo "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
)

func toCartResponse(id string, c *cart.Cart) CartResponse {
	lines := c.Lines()
	resp := CartResponse{
		CartID:      id,
		Items:       make([]CartLineResponse, len(lines)),
		TotalAmount: c.TotalAmount(),
		TotalItems:  c.TotalItems(),
	}
	for i, l := range lines {
		resp.Items[i] = CartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Image:     l.Image,
			Quantity:  l.Quantity,
			Subtotal:  l.Price * float64(l.Quantity),
		}
	}
	return resp
}

// CreateCartHandler godoc
// @Summary Open a new cart session
// @Tags carts
// @Produce json
// @Success 201 {object} CartCreatedResult
// @Router /carts [post]
// @Security BearerAuth
func CreateCartHandler(w http.ResponseWriter, r *http.Request) {
	id := cartStore.Create()
	writeJSON(w, http.StatusCreated, CartCreatedResult{CartID: id})
}

// GetCartHandler godoc
// @Summary Get the current contents of a cart
// @Tags carts
// @Produce json
// @Param id path string true "Cart ID"
// @Success 200 {object} CartResponse
// @Failure 404 {string} string "Not found"
// @Router /carts/{id} [get]
// @Security BearerAuth
func GetCartHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, ok := cartStore.Get(id)
	if !ok {
		http.Error(w, "cart not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(id, c))
}

// DeleteCartHandler godoc
// @Summary Discard a cart session
// @Tags carts
// @Param id path string true "Cart ID"
// @Success 204 "Discarded"
// @Router /carts/{id} [delete]
// @Security BearerAuth
func DeleteCartHandler(w http.ResponseWriter, r *http.Request) {
	cartStore.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// AddCartItemHandler godoc
// @Summary Add one unit of a product to a cart
// @Description Adds a new line at quantity 1, or increments an existing
// @Description line. The product's live stock is checked on every add.
// @Tags carts
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param item body CartItemRequest true "Product to add"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Out of stock"
// @Router /carts/{id}/items [post]
// @Security BearerAuth
func AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, ok := cartStore.Get(id)
	if !ok {
		http.Error(w, "cart not found", http.StatusNotFound)
		return
	}

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	product, err := productRepo.GetByID(req.ProductID)
	if err != nil {
		if err == repo.ErrProductNotFound {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	if err := c.Add(product); err != nil {
		switch {
		case errors.Is(err, cart.ErrOutOfStock):
			http.Error(w, "product is out of stock", http.StatusConflict)
		case errors.Is(err, cart.ErrExceedsStock):
			http.Error(w, "cannot add more than the available stock", http.StatusConflict)
		default:
			http.Error(w, "could not add item", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(id, c))
}

// UpdateCartItemHandler godoc
// @Summary Change a cart line's quantity by a delta
// @Description A delta that drives the quantity to zero or below removes
// @Description the line. Increments re-check the product's live stock.
// @Tags carts
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param productID path int true "Product ID"
// @Param adjustment body QuantityAdjustmentRequest true "Quantity delta"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Exceeds stock"
// @Router /carts/{id}/items/{productID} [patch]
// @Security BearerAuth
func UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, ok := cartStore.Get(id)
	if !ok {
		http.Error(w, "cart not found", http.StatusNotFound)
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
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

	// Increments are bounded by what is on the shelf right now, not by the
	// stock snapshot taken when the line was added.
	currentStock := 0
	if req.Delta > 0 {
		product, err := productRepo.GetByID(productID)
		if err != nil {
			if err == repo.ErrProductNotFound {
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			http.Error(w, "could not fetch product", http.StatusInternalServerError)
			return
		}
		currentStock = product.Stock
	}

	if err := c.UpdateQuantity(productID, req.Delta, currentStock); err != nil {
		switch {
		case errors.Is(err, cart.ErrLineNotFound):
			http.Error(w, "item not in cart", http.StatusNotFound)
		case errors.Is(err, cart.ErrExceedsStock):
			http.Error(w, "cannot add more than the available stock", http.StatusConflict)
		default:
			http.Error(w, "could not update item", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(id, c))
}

// RemoveCartItemHandler godoc
// @Summary Remove a line from a cart
// @Tags carts
// @Produce json
// @Param id path string true "Cart ID"
// @Param productID path int true "Product ID"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Router /carts/{id}/items/{productID} [delete]
// @Security BearerAuth
func RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, ok := cartStore.Get(id)
	if !ok {
		http.Error(w, "cart not found", http.StatusNotFound)
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	c.Remove(productID)
	writeJSON(w, http.StatusOK, toCartResponse(id, c))
}

// ClearCartHandler godoc
// @Summary Remove every line from a cart
// @Tags carts
// @Produce json
// @Param id path string true "Cart ID"
// @Success 200 {object} CartResponse
// @Failure 404 {string} string "Not found"
// @Router /carts/{id}/items [delete]
// @Security BearerAuth
func ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, ok := cartStore.Get(id)
	if !ok {
		http.Error(w, "cart not found", http.StatusNotFound)
		return
	}

	c.Clear()
	writeJSON(w, http.StatusOK, toCartResponse(id, c))
}
