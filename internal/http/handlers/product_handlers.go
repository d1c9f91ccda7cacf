package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
	repo "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
)

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
		Stock:    p.Stock,
		MinStock: p.MinStock,
		SKU:      p.SKU,
		Image:    p.Image,
		LowStock: p.LowStock(),
	}
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the catalog
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} map[string]string
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	product := models.Product{
		Name:      req.Name,
		Price:     req.Price,
		Category:  req.Category,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
		SKU:       req.SKU,
		Image:     req.Image,
		CreatedAt: time.Now().Format(time.RFC3339),
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	created, err := productRepo.Create(product)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create product: SKU duplicated", http.StatusConflict)
			return
		}
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	audit(r, "product.create", "product", strconv.Itoa(created.ID), created.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if err == repo.ErrProductNotFound {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProductResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
// @Security BearerAuth
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	product := models.Product{
		ID:        id,
		Name:      req.Name,
		Price:     req.Price,
		Category:  req.Category,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
		SKU:       req.SKU,
		Image:     req.Image,
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	updated, err := productRepo.Update(product)
	if err != nil {
		if err == repo.ErrProductNotFound {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not update product: SKU duplicated", http.StatusConflict)
			return
		}
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}

	audit(r, "product.update", "product", strconv.Itoa(updated.ID), updated.Name)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
// @Security BearerAuth
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		http.Error(w, "product ID is required", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	if err := productRepo.Delete(id); err != nil {
		if err == repo.ErrProductNotFound {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}

	audit(r, "product.delete", "product", idStr, "")

	w.WriteHeader(http.StatusNoContent)
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// FilterProductsHandler godoc
// @Summary Filter and paginate products
// @Tags products
// @Produce json
// @Param name query string false "Filter by name"
// @Param category query string false "Filter by category"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minQty query int false "Minimum stock"
// @Param maxQty query int false "Maximum stock"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /products/search [get]
func FilterProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repo.ProductFilter{
		Name:     q.Get("name"),
		Category: q.Get("category"),
		MinPrice: parseFloatPtr(q.Get("minPrice")),
		MaxPrice: parseFloatPtr(q.Get("maxPrice")),
		MinQty:   parseIntPtr(q.Get("minQty")),
		MaxQty:   parseIntPtr(q.Get("maxQty")),
		Offset:   parseIntPtr(q.Get("offset")),
		Limit:    parseIntPtr(q.Get("limit")),
	}

	if filter.Limit != nil && *filter.Limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}
	if filter.Offset != nil && *filter.Offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	products, total, err := productRepo.Filter(filter)
	if err != nil {
		http.Error(w, "could not filter products", http.StatusInternalServerError)
		return
	}

	resp := ProductsSearchResult{
		Data: make([]ProductResponse, len(products)),
		Meta: Meta{TotalCount: total},
	}
	for i, p := range products {
		resp.Data[i] = toProductResponse(p)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("failed to encode response: %v", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// GetLowStockProductsHandler godoc
// @Summary List products at or below their minimum stock
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products/low-stock [get]
// @Security BearerAuth
func GetLowStockProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.LowStock()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// RestockProductHandler godoc
// @Summary Add stock to a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param restock body RestockRequest true "Quantity to add"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/restock [post]
// @Security BearerAuth
func RestockProductHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req RestockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.Quantity <= 0 {
		http.Error(w, "quantity must be greater than zero", http.StatusBadRequest)
		return
	}

	updated, err := productRepo.AdjustStock(id, req.Quantity)
	if err != nil {
		if err == repo.ErrProductNotFound {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not restock product", http.StatusInternalServerError)
		return
	}

	if err := movementRepo.Log(id, req.Quantity, models.MovementReasonRestock); err != nil {
		log.Printf("failed to log movement for product %d: %v", id, err)
	}

	audit(r, "product.restock", "product", idStr, fmt.Sprintf("+%d", req.Quantity))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProductResponse(updated))
}

// AdjustProductStockHandler godoc
// @Summary Manually adjust product stock by a delta
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param adjustment body QuantityAdjustmentRequest true "Stock delta"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Stock would go negative"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/adjust [post]
// @Security BearerAuth
func AdjustProductStockHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
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

	updated, err := productRepo.AdjustStock(id, req.Delta)
	if err != nil {
		switch err {
		case repo.ErrProductNotFound:
			http.Error(w, "product not found", http.StatusNotFound)
		case repo.ErrInvalidQuantityChange:
			http.Error(w, "stock cannot go negative", http.StatusConflict)
		default:
			http.Error(w, "could not adjust stock", http.StatusInternalServerError)
		}
		return
	}

	if err := movementRepo.Log(id, req.Delta, models.MovementReasonManual); err != nil {
		log.Printf("failed to log movement for product %d: %v", id, err)
	}

	if mailer != nil && updated.LowStock() {
		mailer.LowStock(updated.Name, updated.Stock, updated.MinStock)
	}

	audit(r, "product.adjust", "product", idStr, fmt.Sprintf("%+d", req.Delta))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProductResponse(updated))
}
