package report

import (
	"sync"
	"time"

	"github/chapool/sapphire-relay/internal/settle"
	"github/chapool/sapphire-relay/internal/wallet/identity"
)

type AccountView struct {
	Role    string `json:"role"`
	Address string `json:"address"`
	Balance string `json:"balance"`
	Units   string `json:"units"`
}

// StatusView is the public status of the relay. It never contains secret material.
type StatusView struct {
	Network      string        `json:"network"`
	StartedAt    time.Time     `json:"started_at"`
	Ready        bool          `json:"ready"`
	Cycle        uint64        `json:"cycle"`
	ObservedAt   *time.Time    `json:"observed_at,omitempty"`
	Accounts     []AccountView `json:"accounts"`
	LastAction   string        `json:"last_action,omitempty"`
	LastActionAt *time.Time    `json:"last_action_at,omitempty"`
	LastError    string        `json:"last_error,omitempty"`
	LastErrorAt  *time.Time    `json:"last_error_at,omitempty"`
	Alerts       uint64        `json:"alerts"`
}

// Status keeps the latest relay state for the status server.
type Status struct {
	mu   sync.RWMutex
	view StatusView
	now  func() time.Time
}

func NewStatus(network string) *Status {
	return &Status{
		view: StatusView{Network: network, StartedAt: time.Now().UTC(), Accounts: []AccountView{}},
		now:  time.Now,
	}
}

// ReportSecret is a no-op: the secret never leaves the terminal.
func (s *Status) ReportSecret(identity.Secret) {}

func (s *Status) ReportBalances(snapshot settle.Snapshot) {
	accounts := []AccountView{accountView(snapshot.Source)}
	if snapshot.Intermediate != nil {
		accounts = append(accounts, accountView(*snapshot.Intermediate))
	}
	accounts = append(accounts, accountView(snapshot.Destination))

	observedAt := snapshot.ObservedAt.UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.Ready = true
	s.view.Cycle = snapshot.Cycle
	s.view.ObservedAt = &observedAt
	s.view.Accounts = accounts
}

func (s *Status) ReportAction(result settle.Result) {
	now := s.now().UTC()
	action := result.Action.String()
	if result.Skipped {
		action += " (skipped)"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.LastAction = action
	s.view.LastActionAt = &now
}

func (s *Status) ReportAlert(err error) {
	now := s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.Alerts++
	s.view.LastError = err.Error()
	s.view.LastErrorAt = &now
}

// Ready reports whether at least one observation succeeded.
func (s *Status) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.view.Ready
}

// Snapshot returns a copy of the current status.
func (s *Status) Snapshot() StatusView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := s.view
	view.Accounts = append([]AccountView(nil), s.view.Accounts...)
	return view
}

func accountView(b settle.Balance) AccountView {
	amount := "0"
	if b.Amount != nil {
		amount = b.Amount.String()
	}

	return AccountView{
		Role:    string(b.Role),
		Address: b.Address,
		Balance: FormatUnits(b.Amount, b.Decimals),
		Units:   amount,
	}
}
