package status_test

import (
	"math/big"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/sapphire-relay/internal/api"
	"github/chapool/sapphire-relay/internal/report"
	"github/chapool/sapphire-relay/internal/settle"
	"github/chapool/sapphire-relay/internal/test"
	"github/chapool/sapphire-relay/internal/wallet/identity"
)

const mnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestGetStatus(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		reporter := report.Multi{s.Status, s.Metrics}
		reporter.ReportSecret(identity.NewSecret(identity.SecretMnemonic, mnemonic))
		reporter.ReportBalances(settle.Snapshot{
			Cycle:      7,
			ObservedAt: time.Now(),
			Source: settle.Balance{
				Role: identity.RoleSource, Address: "oasis1src", Amount: big.NewInt(1_000_000_000), Decimals: 9,
			},
			Destination: settle.Balance{
				Role: identity.RoleDestination, Address: "0xdst", Amount: big.NewInt(0), Decimals: 18,
			},
		})
		reporter.ReportAction(settle.Result{Cycle: 7, Action: settle.ActionDrainSource, Amount: big.NewInt(1)})
		reporter.ReportAlert(errors.New("node unavailable"))

		res := test.PerformRequest(t, s, "GET", "/status", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Equal(t, "no-store", res.Header().Get("Cache-Control"))
		assert.False(t, strings.Contains(res.Body.String(), "abandon"))

		var view report.StatusView
		test.ParseResponseAndValidate(t, res, &view)

		assert.Equal(t, "mainnet", view.Network)
		assert.True(t, view.Ready)
		assert.Equal(t, uint64(7), view.Cycle)
		assert.Equal(t, "drain_source", view.LastAction)
		assert.Equal(t, "node unavailable", view.LastError)
		assert.Equal(t, uint64(1), view.Alerts)
		require.Len(t, view.Accounts, 2)
		assert.Equal(t, "1", view.Accounts[0].Balance)
	})
}

func TestGetStatusBeforeFirstObservation(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/status", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var view report.StatusView
		test.ParseResponseAndValidate(t, res, &view)

		assert.False(t, view.Ready)
		assert.Empty(t, view.Accounts)
	})
}
