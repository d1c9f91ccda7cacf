package handlers

import (
	"encoding/json"
	"net/http"

	repo "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
)

var knownSettings = map[string]bool{
	repo.SettingStoreName:    true,
	repo.SettingStoreAddress: true,
	repo.SettingGCashQRURL:   true,
	repo.SettingMayaQRURL:    true,
}

// GetSettingsHandler godoc
// @Summary Get store settings
// @Description Unset keys fall back to their defaults.
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {string} string "Internal error"
// @Router /settings [get]
// @Security BearerAuth
func GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := settingsRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettingsHandler godoc
// @Summary Update store settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body map[string]string true "Settings to update"
// @Success 200 {object} map[string]string
// @Failure 400 {string} string "Unknown setting"
// @Failure 500 {string} string "Internal error"
// @Router /settings [put]
// @Security BearerAuth
func UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	for key := range req {
		if !knownSettings[key] {
			http.Error(w, "unknown setting: "+key, http.StatusBadRequest)
			return
		}
	}

	for key, value := range req {
		if err := settingsRepo.Set(key, value); err != nil {
			http.Error(w, "could not update settings", http.StatusInternalServerError)
			return
		}
		audit(r, "settings.update", "setting", key, value)
	}

	settings, err := settingsRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
