package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	repo "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
)

const dashboardCacheTTL = 60 * time.Second

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics for the admin view
// @Description The snapshot is computed for today in the store's timezone
// @Description and cached in Redis for a minute.
// @Tags metrics
// @Produce json
// @Success 200 {object} repo.Metrics
// @Failure 500 {string} string "Internal error"
// @Router /metrics/dashboard [get]
// @Security BearerAuth
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	today := time.Now().In(storeLoc).Format("2006-01-02")
	cacheKey := "metrics:dashboard:" + today

	if Rdb != nil {
		if cached, err := Rdb.Get(Ctx, cacheKey).Result(); err == nil {
			var m repo.Metrics
			if json.Unmarshal([]byte(cached), &m) == nil {
				writeJSON(w, http.StatusOK, m)
				return
			}
		}
	}

	m, err := metricsRepo.Dashboard(today)
	if err != nil {
		http.Error(w, "failed to fetch metrics", http.StatusInternalServerError)
		return
	}

	if Rdb != nil {
		if payload, err := json.Marshal(m); err == nil {
			if err := Rdb.Set(Ctx, cacheKey, payload, dashboardCacheTTL).Err(); err != nil {
				log.Printf("failed to cache dashboard metrics: %v", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, m)
}
