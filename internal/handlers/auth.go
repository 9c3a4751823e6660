package handlers

import (
	"context"
	"net/http"

	"github.com/AnshRaj112/journal-backend/internal/apperr"
	"github.com/AnshRaj112/journal-backend/internal/middleware"
	"github.com/AnshRaj112/journal-backend/internal/models"
	"github.com/AnshRaj112/journal-backend/internal/respond"
	"github.com/AnshRaj112/journal-backend/internal/services"
	"github.com/AnshRaj112/journal-backend/internal/validate"
)

// Accounts registers and authenticates users.
type Accounts interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// MeResponse echoes the identity carried by the caller's token.
type MeResponse struct {
	OK   bool               `json:"ok"`
	User *services.Identity `json:"user"`
}

type AuthHandler struct {
	accounts Accounts
	tokens   TokenIssuer
}

func NewAuthHandler(accounts Accounts, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	var user *models.User
	var token string
	err := runSteps(
		func() error { return validate.DecodeJSON(r, &req) },
		func() (err error) {
			user, err = h.accounts.Register(r.Context(), req.Email, req.Password, req.Name)
			return err
		},
		func() (err error) {
			token, err = h.tokens.Issue(user.ID, user.Email)
			return err
		},
	)
	if err != nil {
		respond.AuthError(w, r, err, "Registration failed")
		return
	}
	respond.JSON(w, r, http.StatusCreated, AuthResponse{Success: true, Token: token, User: user})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	var user *models.User
	var token string
	err := runSteps(
		func() error { return validate.DecodeJSON(r, &req) },
		func() (err error) {
			user, err = h.accounts.Login(r.Context(), req.Email, req.Password)
			return err
		},
		func() (err error) {
			token, err = h.tokens.Issue(user.ID, user.Email)
			return err
		},
	)
	if err != nil {
		respond.AuthError(w, r, err, "Login failed")
		return
	}
	respond.JSON(w, r, http.StatusOK, AuthResponse{Success: true, Token: token, User: user})
}

// Me handles GET /me. It reads the identity from the token only.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFrom(r.Context())
	if id == nil {
		respond.Error(w, r, apperr.Unauthorized("unauthenticated"), "")
		return
	}
	respond.JSON(w, r, http.StatusOK, MeResponse{OK: true, User: id})
}
