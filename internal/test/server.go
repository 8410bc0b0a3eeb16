// Package test holds helpers shared by the status server tests.
package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github/chapool/sapphire-relay/internal/api"
	"github/chapool/sapphire-relay/internal/api/httperrors"
	"github/chapool/sapphire-relay/internal/api/router"
	"github/chapool/sapphire-relay/internal/config"
	"github/chapool/sapphire-relay/internal/metrics"
	"github/chapool/sapphire-relay/internal/report"
)

// FakeNode is a NodeChecker whose answer tests can switch.
type FakeNode struct {
	mu  sync.Mutex
	err error
}

func (n *FakeNode) Ping(context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.err
}

func (n *FakeNode) SetError(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = err
}

// WithTestServer runs closure against a fully initialized status server on the default
// configuration. The node answers until told otherwise.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, config.DefaultRelayConfig(), closure)
}

func WithTestServerConfigurable(t *testing.T, cfg config.Relay, closure func(s *api.Server)) {
	t.Helper()

	s := api.NewServer(cfg, report.NewStatus(cfg.Network.Name), metrics.New(), &FakeNode{})
	router.Init(s)

	closure(s)
}

// PerformRequest serves one request through s.Echo and returns the recorded response.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body io.Reader, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header[k] = v
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)

	return res
}

func ParseResponseAndValidate(t *testing.T, res *httptest.ResponseRecorder, v any) {
	t.Helper()

	require.NoError(t, json.NewDecoder(res.Body).Decode(v))
}

func RequireHTTPError(t *testing.T, res *httptest.ResponseRecorder, httpErr *httperrors.HTTPError) {
	t.Helper()

	var response httperrors.HTTPError
	ParseResponseAndValidate(t, res, &response)
	require.Equal(t, *httpErr, response)
	require.Equal(t, httpErr.Code, res.Result().StatusCode)
}
