package handlers

import (
	"net/http"
	"time"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/pricing"
)

// dateRange reads startDate/endDate query params, defaulting both to today
// in the store's timezone.
func dateRange(r *http.Request) (string, string, bool) {
	q := r.URL.Query()
	startDate, endDate := q.Get("startDate"), q.Get("endDate")

	if startDate == "" && endDate == "" {
		today := time.Now().In(storeLoc).Format("2006-01-02")
		return today, today, true
	}
	if startDate == "" || endDate == "" {
		return "", "", false
	}
	return startDate, endDate, true
}

// GetSalesSummaryHandler godoc
// @Summary Sales totals for a date range
// @Description Totals are VAT-inclusive; the response carries the net
// @Description subtotal and VAT portion alongside.
// @Tags reports
// @Produce json
// @Param startDate query string false "Range start (YYYY-MM-DD), defaults to today"
// @Param endDate query string false "Range end (YYYY-MM-DD), defaults to today"
// @Success 200 {object} SummaryResponse
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /reports/summary [get]
// @Security BearerAuth
func GetSalesSummaryHandler(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, ok := dateRange(r)
	if !ok {
		http.Error(w, "startDate and endDate must be provided together", http.StatusBadRequest)
		return
	}

	summary, err := metricsRepo.Summary(startDate, endDate)
	if err != nil {
		http.Error(w, "could not compute summary", http.StatusInternalServerError)
		return
	}

	b := pricing.VATBreakdown(summary.TotalSales)
	writeJSON(w, http.StatusOK, SummaryResponse{
		TotalSales:        summary.TotalSales,
		Transactions:      summary.Transactions,
		AverageOrderValue: summary.AverageOrderValue,
		Subtotal:          b.Subtotal,
		VATAmount:         b.VATAmount,
	})
}

// GetDailySalesHandler godoc
// @Summary Per-day sales series for a date range
// @Tags reports
// @Produce json
// @Param startDate query string false "Range start (YYYY-MM-DD), defaults to today"
// @Param endDate query string false "Range end (YYYY-MM-DD), defaults to today"
// @Success 200 {array} repo.DailySales
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /reports/daily [get]
// @Security BearerAuth
func GetDailySalesHandler(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, ok := dateRange(r)
	if !ok {
		http.Error(w, "startDate and endDate must be provided together", http.StatusBadRequest)
		return
	}

	series, err := metricsRepo.DailySeries(startDate, endDate)
	if err != nil {
		http.Error(w, "could not compute daily series", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, series)
}

// GetTopProductsHandler godoc
// @Summary Best-selling products for a date range
// @Tags reports
// @Produce json
// @Param startDate query string false "Range start (YYYY-MM-DD), defaults to today"
// @Param endDate query string false "Range end (YYYY-MM-DD), defaults to today"
// @Param limit query int false "Number of products to return (default 5)"
// @Success 200 {array} repo.TopProduct
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /reports/top-products [get]
// @Security BearerAuth
func GetTopProductsHandler(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, ok := dateRange(r)
	if !ok {
		http.Error(w, "startDate and endDate must be provided together", http.StatusBadRequest)
		return
	}

	limit := 5
	if l := parseIntPtr(r.URL.Query().Get("limit")); l != nil {
		if *l <= 0 {
			http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
			return
		}
		limit = *l
	}

	top, err := metricsRepo.TopProducts(startDate, endDate, limit)
	if err != nil {
		http.Error(w, "could not compute top products", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, top)
}
