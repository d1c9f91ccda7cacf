package handlers

import (
	"strings"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if p.Price <= 0 {
		errs = append(errs, ProductValidationError{Field: "Price", Description: "Price must be greater than zero"})
	}
	if p.Stock < 0 {
		errs = append(errs, ProductValidationError{Field: "Stock", Description: "Stock cannot be negative"})
	}
	if p.MinStock < 0 {
		errs = append(errs, ProductValidationError{Field: "MinStock", Description: "Minimum stock cannot be negative"})
	}
	if strings.TrimSpace(p.SKU) == "" {
		errs = append(errs, ProductValidationError{Field: "SKU", Description: "SKU is required"})
	}
	return errs
}

func validateIngredient(i IngredientRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if !models.ValidUnit(i.Unit) {
		errs = append(errs, ProductValidationError{Field: "Unit", Description: "Unit must be one of pcs, g, kg, ml, L, pack"})
	}
	if i.CurrentStock < 0 {
		errs = append(errs, ProductValidationError{Field: "CurrentStock", Description: "Current stock cannot be negative"})
	}
	if i.MinStock < 0 {
		errs = append(errs, ProductValidationError{Field: "MinStock", Description: "Minimum stock cannot be negative"})
	}
	return errs
}
