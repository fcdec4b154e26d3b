package domain

import "errors"

var ErrSessionNotFound = errors.New("session not found")

// Session binds an opaque token to an authenticated admin. The token is
// the only thing the browser holds; everything else lives server-side and
// disappears on logout or expiry.
type Session struct {
	Token  string
	UserID string
}
