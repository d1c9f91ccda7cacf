package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
	repo "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// RegisterAsAdminHandler godoc
// @Summary Create a user with a chosen role
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user body RegisterAsAdminRequest true "User to create with role"
// @Success 201 {object} UserResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 403 {string} string "Forbidden"
// @Failure 409 {string} string "User exists"
// @Failure 500 {string} string "Server error"
// @Router /admin/users [post]
func RegisterAsAdminHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterAsAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" || req.Role == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	if !models.ValidRole(req.Role) {
		http.Error(w, "role must be cashier, manager or admin", http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
	}

	created, err := userRepo.CreateUser(user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create user: username duplicated", http.StatusConflict)
			return
		}
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	audit(r, "user.create", "user", strconv.Itoa(created.ID), created.Username+" ("+created.Role+")")

	writeJSON(w, http.StatusCreated, UserResponse{
		Id:       created.ID,
		Username: created.Username,
		Name:     created.Name,
		Role:     created.Role,
	})
}

// GetUsersHandler godoc
// @Summary List all user accounts
// @Tags admin
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 500 {string} string "Internal error"
// @Router /admin/users [get]
// @Security BearerAuth
func GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := userRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch users", http.StatusInternalServerError)
		return
	}

	response := make([]UserResponse, len(users))
	for i, u := range users {
		response[i] = UserResponse{
			Id:       u.ID,
			Username: u.Username,
			Name:     u.Name,
			Role:     u.Role,
		}
	}
	writeJSON(w, http.StatusOK, response)
}

// DeleteUserHandler godoc
// @Summary Delete a user account
// @Tags admin
// @Param id path int true "User ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /admin/users/{id} [delete]
// @Security BearerAuth
func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	if err := userRepo.Delete(id); err != nil {
		if err == repo.ErrUserNotFound {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete user", http.StatusInternalServerError)
		return
	}

	audit(r, "user.delete", "user", idStr, "")

	w.WriteHeader(http.StatusNoContent)
}
