package common

import (
	"github.com/labstack/echo/v4"
	"github/chapool/sapphire-relay/internal/api"
	"github/chapool/sapphire-relay/internal/api/httperrors"
)

func GetMetricsRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/metrics", getMetricsHandler(s))
}

func getMetricsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.Metrics == nil {
			return httperrors.ErrMetricsDisabled
		}

		s.Metrics.Handler().ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
