package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linkbasket/catalog/internal/core/domain"
	"github.com/linkbasket/catalog/internal/core/ports"
)

// SessionCookie is the name of the browser cookie carrying the session token.
const SessionCookie = "catalog_session"

// RequireSession gates admin routes on a live session. Requests without a
// valid, unexpired session are redirected to /login rather than rejected —
// a UX policy inherited from the site's form-driven admin flow, applied
// uniformly to the JSON delete route as well.
//
// On success the admin's user id and the session token are injected into
// the Echo context under "user_id" and "session_token".
func RequireSession(sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}

			sess, err := sessions.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return c.Redirect(http.StatusFound, "/login")
				}
				return err
			}

			c.Set("user_id", sess.UserID)
			c.Set("session_token", sess.Token)

			return next(c)
		}
	}
}
