package report_test

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/sapphire-relay/internal/report"
	"github/chapool/sapphire-relay/internal/settle"
	"github/chapool/sapphire-relay/internal/wallet/identity"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func init() {
	color.NoColor = true
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		amount   *big.Int
		decimals int
		want     string
	}{
		{nil, 9, "0"},
		{big.NewInt(0), 9, "0"},
		{big.NewInt(1), 9, "0.000000001"},
		{big.NewInt(1_500_000_000), 9, "1.5"},
		{big.NewInt(42_000_000_000), 9, "42"},
		{big.NewInt(-2_500_000_000), 9, "-2.5"},
		{big.NewInt(123), 0, "123"},
		{new(big.Int).Mul(big.NewInt(7), big.NewInt(1_000_000_000_000_000)), 18, "0.007"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, report.FormatUnits(tt.amount, tt.decimals))
	}
}

func testSnapshot() settle.Snapshot {
	return settle.Snapshot{
		Cycle:      3,
		ObservedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Source: settle.Balance{
			Role: identity.RoleSource, Address: "oasis1source", Amount: big.NewInt(2_000_000_000), Decimals: 9,
		},
		Intermediate: &settle.Balance{
			Role: identity.RoleIntermediate, Address: "0xintermediate", Amount: big.NewInt(0), Decimals: 18,
		},
		Destination: settle.Balance{
			Role: identity.RoleDestination, Address: "0xdestination", Amount: big.NewInt(5), Decimals: 18,
		},
	}
}

func TestTerminalSecretBanner(t *testing.T) {
	var out bytes.Buffer
	term := report.NewTerminal(&out, "mainnet")

	term.ReportSecret(identity.NewSecret(identity.SecretMnemonic, testMnemonic))
	assert.Contains(t, out.String(), "SECRET mnemonic")
	assert.Contains(t, out.String(), testMnemonic)

	out.Reset()
	term.ReportSecret(identity.Secret{})
	assert.Empty(t, out.String())
}

func TestTerminalBalances(t *testing.T) {
	var out bytes.Buffer
	term := report.NewTerminal(&out, "testnet")

	term.ReportBalances(testSnapshot())

	s := out.String()
	assert.Contains(t, s, "testnet cycle 3")
	assert.Contains(t, s, "oasis1source")
	assert.Contains(t, s, "0xintermediate")
	assert.Contains(t, s, "0xdestination")
	assert.Contains(t, s, "2000000000")
	assert.Contains(t, s, "0.000000000000000005")
}

func TestTerminalActions(t *testing.T) {
	var out bytes.Buffer
	term := report.NewTerminal(&out, "mainnet")

	term.ReportAction(settle.Result{Action: settle.ActionIdle, Delay: 10 * time.Second})
	assert.Contains(t, out.String(), "idle, next check in 10s")

	out.Reset()
	term.ReportAction(settle.Result{
		Action: settle.ActionDrainIntermediate, Skipped: true, Fee: big.NewInt(7_000_000_000_000_000),
	})
	assert.Contains(t, out.String(), "drain_intermediate skipped")
	assert.Contains(t, out.String(), "0.007 ROSE")

	out.Reset()
	term.ReportAction(settle.Result{
		Action: settle.ActionDrainSource, Amount: big.NewInt(10), Fee: big.NewInt(0), Delay: time.Second,
	})
	assert.Contains(t, out.String(), "drain_source submitted: 10 base units")

	out.Reset()
	term.ReportAlert(errors.New("node unavailable"))
	assert.Equal(t, "ALERT: node unavailable\n", out.String())
}

type countingReporter struct {
	secrets, balances, actions, alerts int
}

func (c *countingReporter) ReportSecret(identity.Secret)  { c.secrets++ }
func (c *countingReporter) ReportBalances(settle.Snapshot) { c.balances++ }
func (c *countingReporter) ReportAction(settle.Result)     { c.actions++ }
func (c *countingReporter) ReportAlert(error)              { c.alerts++ }

func TestMulti(t *testing.T) {
	a, b := &countingReporter{}, &countingReporter{}
	m := report.Multi{a, b}

	m.ReportSecret(identity.NewSecret(identity.SecretPrivateKey, "x"))
	m.ReportBalances(testSnapshot())
	m.ReportAction(settle.Result{})
	m.ReportAlert(errors.New("boom"))
	m.ReportAlert(errors.New("boom"))

	for _, r := range []*countingReporter{a, b} {
		assert.Equal(t, 1, r.secrets)
		assert.Equal(t, 1, r.balances)
		assert.Equal(t, 1, r.actions)
		assert.Equal(t, 2, r.alerts)
	}
}

func TestStatus(t *testing.T) {
	status := report.NewStatus("mainnet")
	assert.False(t, status.Ready())

	status.ReportSecret(identity.NewSecret(identity.SecretMnemonic, testMnemonic))
	assert.False(t, status.Ready())

	status.ReportBalances(testSnapshot())
	status.ReportAction(settle.Result{Action: settle.ActionDrainIntermediate, Skipped: true})
	status.ReportAlert(errors.New("node unavailable"))

	require.True(t, status.Ready())

	view := status.Snapshot()
	assert.Equal(t, "mainnet", view.Network)
	assert.Equal(t, uint64(3), view.Cycle)
	assert.Equal(t, uint64(1), view.Alerts)
	assert.Equal(t, "drain_intermediate (skipped)", view.LastAction)
	assert.Equal(t, "node unavailable", view.LastError)
	require.Len(t, view.Accounts, 3)
	assert.Equal(t, "source", view.Accounts[0].Role)
	assert.Equal(t, "2", view.Accounts[0].Balance)
	assert.Equal(t, "2000000000", view.Accounts[0].Units)

	b, err := json.Marshal(view)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(b), "abandon"))
}

func TestStatusSnapshotIsCopy(t *testing.T) {
	status := report.NewStatus("mainnet")
	status.ReportBalances(testSnapshot())

	view := status.Snapshot()
	view.Accounts[0].Address = "changed"

	assert.Equal(t, "oasis1source", status.Snapshot().Accounts[0].Address)
}
