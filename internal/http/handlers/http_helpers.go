package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/auth"
	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

// actor returns the username of the authenticated caller, or "" for
// unauthenticated requests.
func actor(r *http.Request) string {
	_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
	if err != nil {
		return ""
	}
	username, _ := claims["username"].(string)
	return username
}

// audit appends one entry to the action log. Audit failures are logged and
// never fail the request that triggered them.
func audit(r *http.Request, action, entity, entityID, detail string) {
	if auditRepo == nil {
		return
	}
	entry := models.AuditEntry{
		ID:        uuid.NewString(),
		Actor:     actor(r),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Detail:    detail,
		CreatedAt: time.Now().In(storeLoc),
	}
	if err := auditRepo.Log(entry); err != nil {
		log.Printf("failed to write audit entry: %v", err)
	}
}

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}
