package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/cinelog/cinelog-backend/internal/middleware"
	"github.com/cinelog/cinelog-backend/internal/models"
	"github.com/cinelog/cinelog-backend/internal/services"
	"github.com/cinelog/cinelog-backend/internal/store"
	"github.com/cinelog/cinelog-backend/pkg/utils"
)

// UserStore is the slice of the relational store the auth handlers need.
type UserStore interface {
	RegisterUser(ctx context.Context, user models.User, addr models.Address) error
	CreateUser(ctx context.Context, user models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// Sessions is the server-side session service used alongside bearer tokens.
type Sessions interface {
	Create(ctx context.Context, email string) (string, error)
	Identity(ctx context.Context, token string) (string, bool, error)
	Invalidate(ctx context.Context, token string) error
}

// AuthHandler serves registration, both sign-in variants, profile and session
// management.
type AuthHandler struct {
	Store        UserStore
	Sessions     Sessions
	JWTSecret    string
	SecureCookie bool
}

func NewAuthHandler(s UserStore, sessions Sessions, jwtSecret string, secureCookie bool) *AuthHandler {
	return &AuthHandler{Store: s, Sessions: sessions, JWTSecret: jwtSecret, SecureCookie: secureCookie}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Street   string `json:"street"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /users/register: existence check plus transactional
// users+addresses insert. Validation failures never touch the database.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	if req.Email == "" || req.Username == "" || req.Password == "" || req.Country == "" {
		writeMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("register: failed to hash password: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Exception occurred while registering")
		return
	}

	// The creation date is always stamped server-side; a client-sent value is ignored.
	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		Password:     hash,
		CreationDate: time.Now().UTC(),
	}
	addr := models.Address{
		Email:   req.Email,
		Country: req.Country,
		City:    req.City,
		Street:  req.Street,
	}

	if err := h.Store.RegisterUser(r.Context(), user, addr); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeMessage(w, http.StatusConflict, "User already has an account")
			return
		}
		log.Printf("register: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Exception occurred while registering")
		return
	}

	writeMessage(w, http.StatusOK, "User created")
}

// Login handles POST /users/login. On success it establishes a session cookie
// AND returns a 1h bearer token; either credential authenticates later
// requests. Unknown email and wrong password get the same 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	user, err := h.Store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusUnauthorized, "Incorrect email/password")
			return
		}
		log.Printf("login: %v", err)
		writeError(w, http.StatusInternalServerError, "Exception occurred while logging in")
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.Password)
	if err != nil || !valid {
		writeMessage(w, http.StatusUnauthorized, "Incorrect email/password")
		return
	}

	token, err := h.signIn(w, r, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Exception occurred while logging in")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": user.Username,
	})
}

// signIn produces both credentials for a successful authentication: a Redis
// session behind a cookie and a signed bearer token. A session write failure
// is logged but does not fail the login; the session is a convenience, the
// token is the primary credential.
func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request, email string) (string, error) {
	sessionToken, err := h.Sessions.Create(r.Context(), email)
	if err != nil {
		log.Printf("warning: failed to create session for %s: %v", email, err)
	} else {
		http.SetCookie(w, &http.Cookie{
			Name:     services.SessionCookieName,
			Value:    sessionToken,
			Path:     "/",
			MaxAge:   int(services.SessionDuration.Seconds()),
			HttpOnly: true,
			Secure:   h.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}

	token, err := utils.GenerateToken(utils.TokenUser{Email: email}, h.JWTSecret)
	if err != nil {
		log.Printf("failed to sign token for %s: %v", email, err)
		return "", err
	}
	return token, nil
}

// identityFromRequest resolves the caller's identity from the session cookie
// or, failing that, from a bearer token. Used by routes that accept either
// credential.
func (h *AuthHandler) identityFromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(services.SessionCookieName); err == nil {
		if email, ok, err := h.Sessions.Identity(r.Context(), cookie.Value); err == nil && ok {
			return email, true
		}
	}

	if user, ok := middleware.UserFromContext(r.Context()); ok {
		return user.Email, true
	}

	header := r.Header.Get("Authorization")
	if len(header) > 7 && header[:7] == "Bearer " {
		if user, err := utils.VerifyToken(header[7:], h.JWTSecret); err == nil {
			return user.Email, true
		}
	}

	return "", false
}
