package report

import (
	"github/chapool/sapphire-relay/internal/settle"
	"github/chapool/sapphire-relay/internal/wallet/identity"
)

// Multi fans every report out to all reporters, in order.
type Multi []settle.Reporter

func (m Multi) ReportSecret(secret identity.Secret) {
	for _, r := range m {
		r.ReportSecret(secret)
	}
}

func (m Multi) ReportBalances(snapshot settle.Snapshot) {
	for _, r := range m {
		r.ReportBalances(snapshot)
	}
}

func (m Multi) ReportAction(result settle.Result) {
	for _, r := range m {
		r.ReportAction(result)
	}
}

func (m Multi) ReportAlert(err error) {
	for _, r := range m {
		r.ReportAlert(err)
	}
}
