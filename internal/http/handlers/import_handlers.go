package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
	"github.com/tealeg/xlsx"
)

type csvRow struct {
	Name     string
	Price    float64
	Category string
	Stock    int
	MinStock int
	SKU      string
	Image    string
}

func parseCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(h)] = i
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := csvRow{
			Name:     field(record, "name"),
			Price:    parseFloat(field(record, "price")),
			Category: field(record, "category"),
			Stock:    parseInt(field(record, "stock")),
			MinStock: parseInt(field(record, "min_stock")),
			SKU:      field(record, "sku"),
			Image:    field(record, "image"),
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func validateRow(r csvRow) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("missing name")
	}
	if r.Price <= 0 {
		return errors.New("invalid price")
	}
	if r.Stock < 0 {
		return errors.New("invalid stock")
	}
	if r.MinStock < 0 {
		return errors.New("invalid min_stock")
	}
	if strings.TrimSpace(r.SKU) == "" {
		return errors.New("missing sku")
	}
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func nowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Rows are matched to existing products by SKU. Matches are
// @Description skipped by default, or overwritten with mode=update.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	existing, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	bySKU := make(map[string]models.Product, len(existing))
	for _, p := range existing {
		bySKU[p.SKU] = p
	}

	var imported int
	var errorsList []ProductValidationError

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if err := validateRow(rec); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}

		if current, ok := bySKU[rec.SKU]; ok {
			if mode == "skip" {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: SKU '%s' already exists", rowNum, rec.SKU)})
				continue
			}
			current.Name = rec.Name
			current.Price = rec.Price
			current.Category = rec.Category
			current.Stock = rec.Stock
			current.MinStock = rec.MinStock
			current.Image = rec.Image
			current.UpdatedAt = nowRFC3339()
			if _, err := productRepo.Update(current); err != nil {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: failed to update '%s'", rowNum, rec.SKU)})
				continue
			}
			imported++
			continue
		}

		newProduct := models.Product{
			Name:      rec.Name,
			Price:     rec.Price,
			Category:  rec.Category,
			Stock:     rec.Stock,
			MinStock:  rec.MinStock,
			SKU:       rec.SKU,
			Image:     rec.Image,
			CreatedAt: nowRFC3339(),
			UpdatedAt: nowRFC3339(),
		}
		created, err := productRepo.Create(newProduct)
		if err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		if created.Stock > 0 {
			if err := movementRepo.Log(created.ID, created.Stock, models.MovementReasonImport); err != nil {
				log.Printf("failed to log movement for product %d: %v", created.ID, err)
			}
		}
		bySKU[created.SKU] = created
		imported++
	}

	audit(r, "product.import", "product", "", fmt.Sprintf("%d rows imported", imported))

	err = writeJSON(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})

	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}

// ExportProductsHandler godoc
// @Summary Export the product catalog
// @Tags products
// @Produce text/csv, application/json, application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string true "Export format (csv, json or xlsx)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /products/export [get]
// @Security BearerAuth
func ExportProductsHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" && format != "xlsx" {
		http.Error(w, "format must be 'csv', 'json' or 'xlsx'", http.StatusBadRequest)
		return
	}

	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="products.json"`)
		writeJSON(w, http.StatusOK, products)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"name", "price", "category", "stock", "min_stock", "sku", "image"})
		for _, p := range products {
			_ = csvWriter.Write([]string{
				p.Name,
				strconv.FormatFloat(p.Price, 'f', 2, 64),
				p.Category,
				strconv.Itoa(p.Stock),
				strconv.Itoa(p.MinStock),
				p.SKU,
				p.Image,
			})
		}
		csvWriter.Flush()

	case "xlsx":
		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			http.Error(w, "could not build spreadsheet", http.StatusInternalServerError)
			return
		}

		header := sheet.AddRow()
		for _, h := range []string{"Name", "Price", "Category", "Stock", "Min Stock", "SKU"} {
			header.AddCell().Value = h
		}
		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().Value = p.Name
			row.AddCell().SetFloatWithFormat(p.Price, "0.00")
			row.AddCell().Value = p.Category
			row.AddCell().SetInt(p.Stock)
			row.AddCell().SetInt(p.MinStock)
			row.AddCell().Value = p.SKU
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="products.xlsx"`)
		if err := file.Write(w); err != nil {
			log.Printf("failed to write spreadsheet: %v", err)
		}
	}
}
