package handlers

import (
	"encoding/csv"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
	repo "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
	"github.com/tealeg/xlsx"
)

// GetSalesHandler godoc
// @Summary List sales, newest first
// @Tags sales
// @Produce json
// @Param limit query int false "Limit number of sales returned"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} SalesSearchResult
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /sales [get]
// @Security BearerAuth
func GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startDate, endDate := q.Get("startDate"), q.Get("endDate")

	if (startDate == "") != (endDate == "") {
		http.Error(w, "startDate and endDate must be provided together", http.StatusBadRequest)
		return
	}

	var err error
	var sales []models.Sale
	if startDate != "" {
		sales, err = saleRepo.GetByDateRange(startDate, endDate)
	} else {
		limit := parseIntPtr(q.Get("limit"))
		if limit != nil && *limit <= 0 {
			http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
			return
		}
		sales, err = saleRepo.GetAll(limit)
	}
	if err != nil {
		http.Error(w, "could not fetch sales", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, SalesSearchResult{
		Data: sales,
		Meta: Meta{TotalCount: len(sales)},
	})
}

// GetSaleByIDHandler godoc
// @Summary Get a sale with its items
// @Tags sales
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} models.Sale
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /sales/{id} [get]
// @Security BearerAuth
func GetSaleByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sale, err := saleRepo.GetByID(id)
	if err != nil {
		if err == repo.ErrSaleNotFound {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch sale", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sale)
}

// DeleteSaleHandler godoc
// @Summary Delete a sale record
// @Description Removes the sale and its items. Stock is not restored.
// @Tags sales
// @Param id path string true "Transaction ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /sales/{id} [delete]
// @Security BearerAuth
func DeleteSaleHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := saleRepo.Delete(id); err != nil {
		if err == repo.ErrSaleNotFound {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete sale", http.StatusInternalServerError)
		return
	}

	audit(r, "sale.delete", "sale", id, "")

	w.WriteHeader(http.StatusNoContent)
}

// ExportSalesHandler godoc
// @Summary Export sales records
// @Tags sales
// @Produce text/csv, application/json, application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string true "Export format (csv, json or xlsx)"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /sales/export [get]
// @Security BearerAuth
func ExportSalesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format != "csv" && format != "json" && format != "xlsx" {
		http.Error(w, "format must be 'csv', 'json' or 'xlsx'", http.StatusBadRequest)
		return
	}

	startDate, endDate := q.Get("startDate"), q.Get("endDate")
	if (startDate == "") != (endDate == "") {
		http.Error(w, "startDate and endDate must be provided together", http.StatusBadRequest)
		return
	}

	var err error
	var sales []models.Sale
	if startDate != "" {
		sales, err = saleRepo.GetByDateRange(startDate, endDate)
	} else {
		sales, err = saleRepo.GetAll(nil)
	}
	if err != nil {
		http.Error(w, "could not fetch sales", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.json"`)
		json.NewEncoder(w).Encode(sales)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "date", "time", "total_amount", "payment_method", "payment_sub_method", "status"})
		for _, s := range sales {
			_ = csvWriter.Write([]string{
				s.ID,
				s.Date,
				s.Time,
				strconv.FormatFloat(s.TotalAmount, 'f', 2, 64),
				s.PaymentMethod,
				s.PaymentSubMethod,
				s.Status,
			})
		}
		csvWriter.Flush()

	case "xlsx":
		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Sales")
		if err != nil {
			http.Error(w, "could not build spreadsheet", http.StatusInternalServerError)
			return
		}

		header := sheet.AddRow()
		for _, h := range []string{"Transaction ID", "Date", "Time", "Total", "Payment Method", "Sub-Method", "Status"} {
			header.AddCell().Value = h
		}
		for _, s := range sales {
			row := sheet.AddRow()
			row.AddCell().Value = s.ID
			row.AddCell().Value = s.Date
			row.AddCell().Value = s.Time
			row.AddCell().SetFloatWithFormat(s.TotalAmount, "0.00")
			row.AddCell().Value = s.PaymentMethod
			row.AddCell().Value = s.PaymentSubMethod
			row.AddCell().Value = s.Status
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.xlsx"`)
		if err := file.Write(w); err != nil {
			log.Printf("failed to write spreadsheet: %v", err)
		}
	}
}
