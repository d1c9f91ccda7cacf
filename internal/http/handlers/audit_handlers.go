package handlers

import (
	"net/http"
)

// GetAuditLogHandler godoc
// @Summary List audit entries, newest first
// @Tags admin
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} AuditSearchResult
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /audit [get]
// @Security BearerAuth
func GetAuditLogHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
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

	entries, total, err := auditRepo.List(offset, limit)
	if err != nil {
		http.Error(w, "could not fetch audit log", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, AuditSearchResult{
		Data: entries,
		Meta: Meta{TotalCount: total},
	})
}
