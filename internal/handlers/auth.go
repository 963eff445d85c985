package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/cinelog/cinelog-backend/internal/models"
	"github.com/cinelog/cinelog-backend/internal/services"
	"github.com/cinelog/cinelog-backend/internal/store"
	"github.com/cinelog/cinelog-backend/pkg/utils"
)

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MeResponse is the authenticated user's profile plus their messages,
// password excluded.
type MeResponse struct {
	Email        string           `json:"email"`
	Username     string           `json:"username"`
	CreationDate time.Time        `json:"creation_date"`
	Messages     []models.Message `json:"messages"`
}

// Signup handles POST /auth/signup: user creation without an address row.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "missing information")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing information")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("signup: failed to hash password: %v", err)
		writeMessage(w, http.StatusInternalServerError, "failed to save user")
		return
	}

	user := models.User{
		Email:        store.NormalizeEmail(req.Email),
		Username:     req.Username,
		Password:     hash,
		CreationDate: time.Now().UTC(),
	}

	if err := h.Store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeMessage(w, http.StatusConflict, "User already has an account")
			return
		}
		log.Printf("signup: %v", err)
		writeMessage(w, http.StatusInternalServerError, "failed to save user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Signin handles POST /auth/login. Same contract as Login on /users/login but
// the response carries only the token.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "missing information")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing information")
		return
	}

	user, err := h.Store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusUnauthorized, "Incorrect email/password")
			return
		}
		log.Printf("signin: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.Password)
	if err != nil || !valid {
		writeMessage(w, http.StatusUnauthorized, "Incorrect email/password")
		return
	}

	token, err := h.signIn(w, r, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Me handles GET /auth/me. The caller may present either a session cookie or
// a bearer token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := h.identityFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not authenticated")
		return
	}

	user, err := h.Store.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("me: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	messages, err := listUserMessages(r.Context(), user.Email)
	if err != nil {
		log.Printf("me: failed to load messages for %s: %v", user.Email, err)
		messages = []models.Message{}
	}

	writeJSON(w, http.StatusOK, MeResponse{
		Email:        user.Email,
		Username:     user.Username,
		CreationDate: user.CreationDate,
		Messages:     messages,
	})
}

// Logout handles GET /auth/logout and POST /profile. It clears the session
// only; an outstanding bearer token stays valid until it expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(services.SessionCookieName); err == nil {
		if err := h.Sessions.Invalidate(r.Context(), cookie.Value); err != nil {
			log.Printf("logout: failed to invalidate session: %v", err)
		}
		http.SetCookie(w, &http.Cookie{
			Name:     services.SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}

	writeMessage(w, http.StatusOK, "Disconnected")
}
