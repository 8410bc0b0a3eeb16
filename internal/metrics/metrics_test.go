package metrics_test

import (
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/sapphire-relay/internal/ledger"
	"github/chapool/sapphire-relay/internal/metrics"
	"github/chapool/sapphire-relay/internal/settle"
	"github/chapool/sapphire-relay/internal/wallet/identity"
)

var (
	_ settle.Reporter = (*metrics.Service)(nil)
	_ ledger.Observer = (*metrics.Service)(nil)
)

func TestReportActionAndAlert(t *testing.T) {
	m := metrics.New()

	m.ReportAction(settle.Result{Action: settle.ActionDrainSource, Amount: big.NewInt(1_000_000_000)})
	m.ReportAction(settle.Result{Action: settle.ActionDrainIntermediate, Skipped: true})
	m.ReportAction(settle.Result{Action: settle.ActionIdle})
	m.ReportAlert(errors.New("boom"))

	expected := `
# HELP sapphire_relay_cycles_total Completed relay cycles by action.
# TYPE sapphire_relay_cycles_total counter
sapphire_relay_cycles_total{action="drain_intermediate",skipped="true"} 1
sapphire_relay_cycles_total{action="drain_source",skipped="false"} 1
sapphire_relay_cycles_total{action="idle",skipped="false"} 1
# HELP sapphire_relay_alerts_total Failed relay cycles.
# TYPE sapphire_relay_alerts_total counter
sapphire_relay_alerts_total 1
# HELP sapphire_relay_moved_base_units_total Amount moved per action, in base units of the receiving ledger.
# TYPE sapphire_relay_moved_base_units_total counter
sapphire_relay_moved_base_units_total{action="drain_source"} 1e+09
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"sapphire_relay_cycles_total", "sapphire_relay_alerts_total", "sapphire_relay_moved_base_units_total"))
}

func TestReportBalances(t *testing.T) {
	m := metrics.New()

	m.ReportBalances(settle.Snapshot{
		ObservedAt: time.Unix(1700000000, 0),
		Source: settle.Balance{
			Role: identity.RoleSource, Address: "oasis1src", Amount: big.NewInt(2_500_000_000), Decimals: 9,
		},
		Destination: settle.Balance{
			Role: identity.RoleDestination, Address: "0xdst", Amount: big.NewInt(0), Decimals: 18,
		},
	})

	expected := `
# HELP sapphire_relay_balance Last observed balance per account, in whole tokens.
# TYPE sapphire_relay_balance gauge
sapphire_relay_balance{address="0xdst",role="destination"} 0
sapphire_relay_balance{address="oasis1src",role="source"} 2.5
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "sapphire_relay_balance"))
}

func TestObserveRPCAndHandler(t *testing.T) {
	m := metrics.New()

	m.ObserveRPC("consensus_balance", 10*time.Millisecond, nil)
	m.ObserveRPC("consensus_balance", 20*time.Millisecond, errors.New("unavailable"))

	count, err := testutil.GatherAndCount(m.Registry(), "sapphire_relay_rpc_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sapphire_relay_rpc_duration_seconds_count{method="consensus_balance"} 2`)
	assert.Contains(t, rec.Body.String(), `sapphire_relay_rpc_errors_total{method="consensus_balance"} 1`)
}
