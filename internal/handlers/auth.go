package handlers

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/stockchef/auth"
	"github.com/diewo77/stockchef/httpx"
	"github.com/diewo77/stockchef/i18n"
	"github.com/diewo77/stockchef/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	issuer *auth.Issuer
}

func NewAuthHandler(db *gorm.DB, issuer *auth.Issuer) *AuthHandler {
	return &AuthHandler{db: db, issuer: issuer}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	lang := i18n.LangFromContext(r.Context())
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(r.Context()).Where("email = ?", email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, r, err)
			return
		}
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", i18n.T(lang, "invalid_credentials"), nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", i18n.T(lang, "invalid_credentials"), nil)
		return
	}

	token, err := h.issuer.Issue(user.ID, user.Email, user.FullName, user.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, LoginResponse{
		Token:    token,
		Type:     "Bearer",
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	})
}

// Me echoes the caller's token claims.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	c, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", "", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"email":    c.Email,
		"fullName": c.FullName,
		"role":     c.Role,
	})
}
