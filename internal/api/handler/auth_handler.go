package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/linkbasket/catalog/internal/api/metrics"
	"github.com/linkbasket/catalog/internal/api/middleware"
	"github.com/linkbasket/catalog/internal/core/domain"
	"github.com/linkbasket/catalog/internal/core/ports"
)

// AuthHandler serves the login page and the session lifecycle endpoints.
type AuthHandler struct {
	auth       ports.AuthService
	sessions   ports.SessionStore
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionStore, sessionTTL time.Duration, log zerolog.Logger) *AuthHandler {
	if sessionTTL <= 0 {
		sessionTTL = 8 * time.Hour
	}
	return &AuthHandler{auth: auth, sessions: sessions, sessionTTL: sessionTTL, log: log}
}

type loginPage struct {
	Error string
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// LoginPage handles GET /login. An already-authenticated admin is sent
// straight to the panel.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if _, err := h.sessions.Get(c.Request().Context(), cookie.Value); err == nil {
			return c.Redirect(http.StatusFound, "/admin")
		}
	}
	return c.Render(http.StatusOK, "login.html", loginPage{})
}

// Login handles POST /login. Failures re-render the form with a generic
// message: malformed input, unknown email, and wrong password all look
// the same to the caller.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return c.Render(http.StatusUnauthorized, "login.html", loginPage{Error: "Invalid credentials"})
	}
	if err := c.Validate(&form); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return c.Render(http.StatusUnauthorized, "login.html", loginPage{Error: "Invalid credentials"})
	}

	session, err := h.auth.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.Render(http.StatusUnauthorized, "login.html", loginPage{Error: "Invalid credentials"})
		}
		h.log.Error().Err(err).Msg("login failed")
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return c.Render(http.StatusInternalServerError, "login.html", loginPage{Error: "Something went wrong"})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusFound, "/admin")
}

// Logout handles POST /logout. Destroys the session unconditionally and
// sends the visitor home.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := h.auth.Logout(c.Request().Context(), cookie.Value); err != nil {
			h.log.Warn().Err(err).Msg("session destroy failed")
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, "/")
}
