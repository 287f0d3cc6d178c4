package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/vyapar/app/dto"
	"github.com/shashiranjanraj/vyapar/app/services"
	"github.com/shashiranjanraj/vyapar/pkg/apperr"
	"github.com/shashiranjanraj/vyapar/pkg/bind"
	"github.com/shashiranjanraj/vyapar/pkg/response"
	"github.com/shashiranjanraj/vyapar/pkg/session"
)

// AuthController serves /register, /login, and /logout.
type AuthController struct {
	service  *services.AuthService
	sessions *session.Manager
}

func NewAuthController(service *services.AuthService, sessions *session.Manager) *AuthController {
	return &AuthController{service: service, sessions: sessions}
}

type credentialsInput struct {
	Username string `json:"username" validate:"required,alpha_dash,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// Register creates an account and returns the user payload.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body credentialsInput
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Register(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrDuplicateUsername) {
			response.Error(w, http.StatusBadRequest, "Username already exists")
			return
		}
		internalError(w, r, err)
		return
	}

	response.Success(w, dto.NewUserResponse(user, nil))
}

// Login verifies credentials, sets the session cookie, and returns the user
// payload. The token is also exposed in X-Session-Token for clients that
// prefer the Authorization header over cookies.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body credentialsInput
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, orders, token, err := c.service.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		internalError(w, r, err)
		return
	}

	http.SetCookie(w, c.sessions.Cookie(token))
	w.Header().Set("X-Session-Token", token)
	response.Success(w, dto.NewUserResponse(user, orders))
}

// Logout destroys the caller's session. The auth middleware has already
// established that the session is live.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	token := c.sessions.TokenFromRequest(r)
	if token == "" {
		response.Unauthorized(w)
		return
	}

	if err := c.service.Logout(r.Context(), token); err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			response.Unauthorized(w)
			return
		}
		internalError(w, r, err)
		return
	}

	http.SetCookie(w, c.sessions.ClearCookie())
	response.NoContent(w)
}
