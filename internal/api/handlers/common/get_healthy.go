package common

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github/chapool/sapphire-relay/internal/api"
	"github/chapool/sapphire-relay/internal/api/httperrors"
	"github/chapool/sapphire-relay/internal/util"
)

const nodeCheckTimeout = 5 * time.Second

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// Liveness: the process serves requests and the node answers.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), nodeCheckTimeout)
		defer cancel()

		if err := s.Node.Ping(ctx); err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Msg("Health check failed to reach node")
			return httperrors.ErrNodeUnavailable
		}

		return c.String(http.StatusOK, "Healthy.")
	}
}
