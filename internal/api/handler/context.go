package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
	"github.com/ignitecapital/funding-platform/internal/core/ports"
)

// ctxCaller extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the user id and a
// valid role must be present, their absence means the middleware did not run
// or the token carried no usable identity.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || !domain.Role(role).Valid() {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Caller{ID: userID, Role: domain.Role(role)}, nil
}

// ctxToken extracts the token id and expiry used by the logout flow.
func ctxToken(c echo.Context) (tokenID string, expiresAt time.Time, err error) {
	tokenID, _ = c.Get("token_id").(string)
	expiresAt, _ = c.Get("token_exp").(time.Time)
	if tokenID == "" {
		return "", time.Time{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing identity")
	}
	return tokenID, expiresAt, nil
}
