package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renewables/energy-dashboard/internal/api/middleware"
	"github.com/renewables/energy-dashboard/internal/core/ports"
)

// ctxClaims returns the claims injected by the Auth middleware. Missing
// claims mean the route was wired without Auth; treat it as unauthenticated.
func ctxClaims(c echo.Context) (*ports.Claims, error) {
	claims, ok := c.Get(middleware.KeyClaims).(*ports.Claims)
	if !ok || claims == nil || claims.Role == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
