package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/helpers"
	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"github.com/trinetrasoft/cloud-kitchen/app/services/auth"
)

// TokenIssuer signs session tokens after a password login.
type TokenIssuer interface {
	GenerateToken(user *models.User) (string, time.Time, error)
}

type AuthHandler struct {
	render    *render.Render
	users     auth.UserFinder
	issuer    TokenIssuer
	secure    bool
	validator *validator.Validate
}

// NewAuthHandler takes a nil issuer when sign-in is handled elsewhere.
func NewAuthHandler(r *render.Render, users auth.UserFinder, issuer TokenIssuer, secure bool, v *validator.Validate) *AuthHandler {
	return &AuthHandler{render: r, users: users, issuer: issuer, secure: secure, validator: v}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.issuer == nil {
		_ = h.render.JSON(w, http.StatusNotFound, errorResponse{Error: "password login is not enabled"})
		return
	}

	var req LoginRequest
	if !decodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}

	user, err := auth.Login(r.Context(), h.users, req.Email, req.Password)
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}

	token, expiresAt, err := h.issuer.GenerateToken(user)
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Expires:  expiresAt,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	zap.S().Infof("AuthHandler.Login: user %s signed in", user.ID)
	_ = h.render.JSON(w, http.StatusOK, loginResponse{User: user, Token: token, ExpiresAt: expiresAt})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		writeError(h.render, w, r, auth.ErrUnauthenticated)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user)
}
