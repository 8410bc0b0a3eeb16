package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/sapphire-relay/internal/api"
	"github/chapool/sapphire-relay/internal/api/httperrors"
)

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// Readiness: true once the relay has observed balances.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(httperrors.StatusNotHealthy, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
