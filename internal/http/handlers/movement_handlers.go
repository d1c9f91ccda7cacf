package handlers

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// GetProductMovementsHandler godoc
// @Summary List stock movements for a product
// @Tags movements
// @Produce json
// @Param id path int true "Product ID"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Param limit query int false "Limit for pagination"
// @Param offset query int false "Offset for pagination"
// @Success 200 {object} MovementsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/movements [get]
// @Security BearerAuth
func GetProductMovementsHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	since, until := parseTimeRange(q.Get("since"), q.Get("until"))

	limit := parseIntPtr(q.Get("limit"))
	offset := parseIntPtr(q.Get("offset"))
	if limit != nil && *limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}
	if offset != nil && *offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	movements, total, err := movementRepo.GetByProductID(id, since, until, limit, offset)
	if err != nil {
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}

	resp := MovementsSearchResult{
		Data: make([]MovementResponse, len(movements)),
		Meta: Meta{TotalCount: total},
	}
	for i, m := range movements {
		resp.Data[i] = MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Delta:     m.Delta,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// parseTimeRange tolerates the '+' in RFC3339 offsets arriving as a space
// after URL decoding.
func parseTimeRange(sinceStr, untilStr string) (since, until *time.Time) {
	if len(sinceStr) == len(time.RFC3339) && sinceStr[len(sinceStr)-6] == ' ' {
		sinceStr = sinceStr[:len(sinceStr)-6] + "+" + sinceStr[len(sinceStr)-5:]
	}
	if len(untilStr) == len(time.RFC3339) && untilStr[len(untilStr)-6] == ' ' {
		untilStr = untilStr[:len(untilStr)-6] + "+" + untilStr[len(untilStr)-5:]
	}

	if sinceStr != "" {
		if ts, err := time.Parse(time.RFC3339, sinceStr); err == nil {
			since = &ts
		}
	}
	if untilStr != "" {
		if ts, err := time.Parse(time.RFC3339, untilStr); err == nil {
			until = &ts
		}
	}
	return since, until
}

// ExportMovementsHandler godoc
// @Summary Export product movement logs
// @Tags movements
// @Produce text/csv, application/json
// @Param id path int true "Product ID"
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/movements/export [get]
// @Security BearerAuth
func ExportMovementsHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	since, until := parseTimeRange(r.URL.Query().Get("since"), r.URL.Query().Get("until"))

	movements, _, err := movementRepo.GetByProductID(id, since, until, nil, nil)
	if err != nil {
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="movements.json"`)
		json.NewEncoder(w).Encode(movements)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="movements.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "product_id", "delta", "reason", "created_at"})
		for _, m := range movements {
			_ = csvWriter.Write([]string{
				strconv.Itoa(m.ID),
				strconv.Itoa(m.ProductID),
				strconv.Itoa(m.Delta),
				m.Reason,
				m.CreatedAt,
			})
		}
		csvWriter.Flush()
	}
}
