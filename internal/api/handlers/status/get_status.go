package status

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/sapphire-relay/internal/api"
)

func GetStatusRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/status", getStatusHandler(s))
}

func getStatusHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		return c.JSON(http.StatusOK, s.Status.Snapshot())
	}
}
