package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github/chapool/sapphire-relay/internal/config"
	"github/chapool/sapphire-relay/internal/metrics"
	"github/chapool/sapphire-relay/internal/report"
)

// NodeChecker reports whether the node the relay talks to is reachable.
type NodeChecker interface {
	Ping(ctx context.Context) error
}

type Router struct {
	Routes     []*echo.Route
	Root       *echo.Group
	Management *echo.Group
}

// Server is the optional status server of the relay. It only reads relay state; it never
// carries key material.
//
// Echo and Router are set by router.Init.
type Server struct {
	Echo   *echo.Echo
	Router *Router

	Config  config.Relay
	Status  *report.Status
	Metrics *metrics.Service
	Node    NodeChecker
}

func NewServer(cfg config.Relay, status *report.Status, metrics *metrics.Service, node NodeChecker) *Server {
	return &Server{
		Config:  cfg,
		Status:  status,
		Metrics: metrics,
		Node:    node,
	}
}

// Initialized reports whether every component is set.
func (s *Server) Initialized() error {
	switch {
	case s.Echo == nil:
		return errors.New("echo is not initialized")
	case s.Router == nil:
		return errors.New("router is not initialized")
	case s.Status == nil:
		return errors.New("status is not initialized")
	case s.Metrics == nil:
		return errors.New("metrics is not initialized")
	case s.Node == nil:
		return errors.New("node checker is not initialized")
	}

	return nil
}

// Ready reports whether the server is initialized and the relay has observed balances at
// least once.
func (s *Server) Ready() bool {
	if err := s.Initialized(); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return s.Status.Ready()
}

func (s *Server) Start() error {
	if err := s.Initialized(); err != nil {
		return fmt.Errorf("server is not initialized: %w", err)
	}

	if err := s.Echo.Start(s.Config.StatusListen); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Warn().Msg("Shutting down status server")

	if s.Echo == nil {
		return nil
	}

	if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Failed to shutdown echo server")
		return err
	}

	return nil
}
