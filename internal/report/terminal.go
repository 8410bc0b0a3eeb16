package report

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github/chapool/sapphire-relay/internal/settle"
	"github/chapool/sapphire-relay/internal/wallet/identity"
)

const tokenSymbol = "ROSE"

var (
	secretBanner = color.New(color.BgRed, color.FgHiWhite, color.Bold)
	secretValue  = color.New(color.FgHiRed, color.Bold)
	headerStyle  = color.New(color.Bold, color.FgHiWhite)
	actionStyle  = color.New(color.FgGreen)
	skippedStyle = color.New(color.FgYellow)
	alertStyle   = color.New(color.FgRed, color.Bold)
	faintStyle   = color.New(color.Faint)
)

// Terminal writes the relay state for an operator watching the process.
type Terminal struct {
	mu      sync.Mutex
	out     io.Writer
	network string
}

func NewTerminal(out io.Writer, network string) *Terminal {
	return &Terminal{out: out, network: network}
}

// ReportSecret prints the secret once, flagged so it cannot be mistaken for an address.
func (t *Terminal) ReportSecret(secret identity.Secret) {
	if secret.IsZero() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintln(t.out)
	secretBanner.Fprintf(t.out, " SECRET %s ", secret.Kind)
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "Anyone holding this controls the relay accounts. Store it offline and never share it.")
	secretValue.Fprintln(t.out, secret.Reveal())
	fmt.Fprintln(t.out)
}

func (t *Terminal) ReportBalances(snapshot settle.Snapshot) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.SeparateRows = false
	tw.AppendHeader(table.Row{"Account", "Address", "Balance (" + tokenSymbol + ")", "Base units"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	rows := []settle.Balance{snapshot.Source}
	if snapshot.Intermediate != nil {
		rows = append(rows, *snapshot.Intermediate)
	}
	rows = append(rows, snapshot.Destination)

	for _, b := range rows {
		tw.AppendRow(table.Row{string(b.Role), b.Address, FormatUnits(b.Amount, b.Decimals), b.Amount.String()})
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	headerStyle.Fprintf(t.out, "%s cycle %d", t.network, snapshot.Cycle)
	faintStyle.Fprintf(t.out, "  %s\n", snapshot.ObservedAt.Format(time.RFC3339))
	fmt.Fprintln(t.out, tw.Render())
}

func (t *Terminal) ReportAction(result settle.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case result.Action == settle.ActionIdle:
		faintStyle.Fprintf(t.out, "idle, next check in %s\n", result.Delay)
	case result.Skipped:
		skippedStyle.Fprintf(t.out, "%s skipped: balance does not cover fee of %s %s\n",
			result.Action, FormatUnits(result.Fee, 18), tokenSymbol)
	default:
		actionStyle.Fprintf(t.out, "%s submitted: %s base units (fee %s), next check in %s\n",
			result.Action, result.Amount, result.Fee, result.Delay)
	}
}

func (t *Terminal) ReportAlert(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	alertStyle.Fprintf(t.out, "ALERT: %v\n", err)
}
