package handlers

import (
	"github.com/labstack/echo/v4"
	"github/chapool/sapphire-relay/internal/api"
	"github/chapool/sapphire-relay/internal/api/handlers/common"
	"github/chapool/sapphire-relay/internal/api/handlers/status"
)

func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		common.GetMetricsRoute(s),
		status.GetStatusRoute(s),
	}
}
