package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/auth"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// RegisterHandler godoc
// @Summary Register a new cashier account and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 201 {object} RegisterResult
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "User exists"
// @Router /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if creds.Username == "" || creds.Password == "" {
		http.Error(w, "Missing credentials", http.StatusBadRequest)
		return
	}

	if len(creds.Username) < 3 || len(creds.Password) < 6 {
		http.Error(w, "username or password too short", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	// Self-service registration always yields the least privileged role.
	user := models.User{
		Username:     creds.Username,
		PasswordHash: string(hashed),
		Role:         models.RoleCashier,
	}

	created, err := userRepo.CreateUser(user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) || strings.Contains(err.Error(), "unique constraint") {
			http.Error(w, "username already exists", http.StatusConflict)
		} else {
			http.Error(w, "failed to register user", http.StatusInternalServerError)
		}
		return
	}

	token, err := auth.GenerateToken(created)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(RegisterResult{
		Message: "user registered",
		Token:   token,
	})

	if err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// LoginHandler godoc
// @Summary Authenticate and return access and refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByUsername(credentials.Username)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	var refreshToken string
	if refreshStore != nil {
		refreshToken, err = refreshStore.Issue(user.Username)
		if err != nil {
			http.Error(w, "could not issue refresh token", http.StatusInternalServerError)
			return
		}
	}

	err = json.NewEncoder(w).Encode(LoginResult{
		Token:        token,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Name:         user.Name,
		Role:         user.Role,
	})

	if err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// RefreshTokenHandler godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshTokenRequest true "refresh token"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /refresh [post]
func RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	username, err := refreshStore.Validate(req.RefreshToken)
	if err != nil {
		http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	user, err := userRepo.GetByUsername(username)
	if err != nil {
		http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	// Rotate: the presented token is spent.
	if err := refreshStore.Revoke(req.RefreshToken); err != nil {
		log.Printf("failed to revoke refresh token: %v", err)
	}
	refreshToken, err := refreshStore.Issue(user.Username)
	if err != nil {
		http.Error(w, "could not issue refresh token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LoginResult{
		Token:        token,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Name:         user.Name,
		Role:         user.Role,
	})
}

// LogoutHandler godoc
// @Summary Revoke a refresh token
// @Tags auth
// @Accept json
// @Param token body RefreshTokenRequest true "refresh token"
// @Success 204 "Logged out"
// @Failure 400 {string} string "Invalid input"
// @Router /logout [post]
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if refreshStore != nil {
		if err := refreshStore.Revoke(req.RefreshToken); err != nil {
			log.Printf("failed to revoke refresh token: %v", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
