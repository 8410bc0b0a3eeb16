package settle

import (
	"context"
	"math/big"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github/chapool/sapphire-relay/internal/apperrors"
	"github/chapool/sapphire-relay/internal/ledger/tx"
	"github/chapool/sapphire-relay/internal/wallet/identity"
)

var ErrMissingSigner = errors.New("account has no signer")

// Engine drives funds from the source account, through the optional intermediate account,
// to the destination. It runs observe, decide, act and wait cycles one at a time until its
// context is cancelled; there is no terminal state.
type Engine struct {
	gateway  Gateway
	identity *identity.Identity
	params   Params
	reporter Reporter
	log      zerolog.Logger

	cycle uint64
	now   func() time.Time
	wait  func(ctx context.Context, d time.Duration) error
}

type Option func(*Engine)

// WithClock replaces the wall clock and the delay between cycles.
func WithClock(now func() time.Time, wait func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Engine) {
		e.now = now
		e.wait = wait
	}
}

func NewEngine(gateway Gateway, id *identity.Identity, params Params, reporter Reporter, opts ...Option) (*Engine, error) {
	const op = "new engine"

	if id.Source.Signer == nil {
		return nil, apperrors.NewConfig(op, errors.Wrap(ErrMissingSigner, "source"))
	}
	if id.HasIntermediate() && (id.Intermediate.Signer == nil || id.Intermediate.Eth == nil) {
		return nil, apperrors.NewConfig(op, errors.Wrap(ErrMissingSigner, "intermediate"))
	}
	if id.Destination.Eth == nil {
		return nil, apperrors.NewConfig(op, errors.New("destination has no runtime address"))
	}

	e := &Engine{
		gateway:  gateway,
		identity: id,
		params:   params,
		reporter: reporter,
		log:      log.With().Str("component", "settle").Logger(),
		now:      time.Now,
		wait:     sleep,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Run reports the secret once and then cycles until ctx is done. A failed cycle is reported
// and followed by the poll interval; it never stops the loop.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info().
		Str("source", e.identity.Source.Display()).
		Str("destination", e.identity.Destination.Display()).
		Bool("intermediate", e.identity.HasIntermediate()).
		Dur("poll_interval", e.params.PollInterval).
		Msg("Starting settlement loop")

	e.reporter.ReportSecret(e.identity.Secret)

	for {
		delay := e.params.PollInterval

		result, err := e.Step(ctx)
		switch {
		case ctx.Err() != nil:
			e.log.Info().Msg("Settlement loop stopped")
			return nil
		case err != nil:
			e.log.Error().Err(err).Uint64("cycle", e.cycle).Msg("Settlement cycle failed")
			e.reporter.ReportAlert(err)
		default:
			delay = result.Delay
		}

		if err := e.wait(ctx, delay); err != nil {
			e.log.Info().Msg("Settlement loop stopped")
			return nil
		}
	}
}

// Step runs one observe, decide and act cycle. Errors are operational.
func (e *Engine) Step(ctx context.Context) (Result, error) {
	e.cycle++

	state, err := e.observe(ctx)
	if err != nil {
		return Result{}, apperrors.NewOperational("observe", err)
	}

	action := Decide(state)
	result := Result{Cycle: e.cycle, Action: action, Delay: e.params.PollInterval}

	switch action {
	case ActionDrainSource:
		err = e.drainSource(ctx, state.Source, &result)
	case ActionDrainIntermediate:
		err = e.drainIntermediate(ctx, state.Intermediate, &result)
	case ActionIdle:
	}
	if err != nil {
		return Result{}, apperrors.NewOperational(action.String(), err)
	}

	e.log.Debug().
		Uint64("cycle", e.cycle).
		Stringer("action", action).
		Bool("skipped", result.Skipped).
		Dur("delay", result.Delay).
		Msg("Cycle complete")
	e.reporter.ReportAction(result)

	return result, nil
}

func (e *Engine) observe(ctx context.Context) (State, error) {
	id := e.identity
	fees := e.params.Fees

	source, err := e.gateway.ConsensusBalance(ctx, id.Source.Address)
	if err != nil {
		return State{}, errors.Wrap(err, "source balance")
	}

	snapshot := Snapshot{
		Cycle:      e.cycle,
		ObservedAt: e.now(),
		Source: Balance{
			Role:     id.Source.Role,
			Address:  id.Source.Display(),
			Amount:   source,
			Decimals: fees.ConsensusDecimals,
		},
	}
	state := State{Source: source, HasIntermediate: id.HasIntermediate()}

	if id.HasIntermediate() {
		intermediate, err := e.gateway.RuntimeBalance(ctx, *id.Intermediate.Eth)
		if err != nil {
			return State{}, errors.Wrap(err, "intermediate balance")
		}

		state.Intermediate = intermediate
		snapshot.Intermediate = &Balance{
			Role:     id.Intermediate.Role,
			Address:  id.Intermediate.Display(),
			Amount:   intermediate,
			Decimals: fees.RuntimeDecimals,
		}
	}

	destination, err := e.gateway.RuntimeBalance(ctx, *id.Destination.Eth)
	if err != nil {
		return State{}, errors.Wrap(err, "destination balance")
	}

	snapshot.Destination = Balance{
		Role:     id.Destination.Role,
		Address:  id.Destination.Display(),
		Amount:   destination,
		Decimals: fees.RuntimeDecimals,
	}

	e.reporter.ReportBalances(snapshot)

	return state, nil
}

// drainSource grants the bridge an allowance over the whole source balance and deposits it
// into the runtime. Both transactions are signed by the source; the allowance is submitted
// first so the deposit can draw on it.
func (e *Engine) drainSource(ctx context.Context, amount *big.Int, result *Result) error {
	source := e.identity.Source

	chainContext, err := e.gateway.ChainContext(ctx)
	if err != nil {
		return errors.Wrap(err, "chain context")
	}

	e.warnExistingAllowance(ctx)

	nonce, err := e.gateway.ConsensusNonce(ctx, source.Address)
	if err != nil {
		return errors.Wrap(err, "consensus nonce")
	}

	allow, err := tx.NewAllowance(nonce, e.params.Bridge, amount)
	if err != nil {
		return err
	}

	gas, err := e.gateway.EstimateGas(ctx, source.Signer.Public(), allow)
	if err != nil {
		return errors.Wrap(err, "estimate allowance gas")
	}
	allow.Fee.Gas = gas

	signed, err := tx.SignConsensus(source.Signer, chainContext, allow)
	if err != nil {
		return err
	}

	if err := e.gateway.SubmitConsensus(ctx, signed); err != nil {
		return errors.Wrap(err, "submit allowance")
	}

	e.log.Info().
		Str("amount", amount.String()).
		Uint64("nonce", nonce).
		Uint64("gas", gas).
		Msg("Allowance granted")

	runtimeNonce, err := e.gateway.RuntimeNonce(ctx, source.Address)
	if err != nil {
		return errors.Wrap(err, "source runtime nonce")
	}

	si, err := tx.NewSignerInfo(source.Signer, runtimeNonce)
	if err != nil {
		return err
	}

	to := e.identity.Destination
	if e.identity.HasIntermediate() {
		to = *e.identity.Intermediate
	}

	deposited := DepositAmount(amount, e.params.Fees)

	deposit, err := tx.NewDeposit(to.Address, deposited, si, e.params.Fees.FeeGas)
	if err != nil {
		return err
	}

	utx, err := tx.SignRuntime(source.Signer, e.params.RuntimeID, chainContext, deposit)
	if err != nil {
		return err
	}

	if err := e.gateway.SubmitRuntime(ctx, utx); err != nil {
		return errors.Wrap(err, "submit deposit")
	}

	e.log.Info().
		Str("amount", deposited.String()).
		Str("to", to.Display()).
		Uint64("nonce", runtimeNonce).
		Msg("Deposited into runtime")

	result.Amount = deposited
	result.Fee = big.NewInt(0)
	result.Delay = e.params.PollInterval

	return nil
}

// warnExistingAllowance flags an allowance left over from an interrupted run. The grant below
// raises the allowance by the balance instead of setting it, so a leftover is not corrected.
func (e *Engine) warnExistingAllowance(ctx context.Context) {
	allowance, err := e.gateway.ConsensusAllowance(ctx, e.identity.Source.Address, e.params.Bridge)
	if err != nil {
		e.log.Debug().Err(err).Msg("Could not read existing allowance")
		return
	}

	if allowance != nil && allowance.Sign() > 0 {
		e.log.Warn().
			Str("allowance", allowance.String()).
			Msg("Bridge already holds an allowance; granting the full balance on top of it")
	}
}

func (e *Engine) drainIntermediate(ctx context.Context, balance *big.Int, result *Result) error {
	intermediate := e.identity.Intermediate
	destination := e.identity.Destination

	amount, fee, ok := ComputeTransfer(balance, e.params.Fees)
	if !ok {
		e.log.Warn().
			Str("balance", balance.String()).
			Str("fee", fee.String()).
			Msg("Intermediate balance does not cover the transfer fee, skipping")

		result.Skipped = true
		result.Amount = big.NewInt(0)
		result.Fee = fee
		result.Delay = e.params.PollInterval
		return nil
	}

	chainContext, err := e.gateway.ChainContext(ctx)
	if err != nil {
		return errors.Wrap(err, "chain context")
	}

	nonce, err := e.gateway.RuntimeNonce(ctx, intermediate.Address)
	if err != nil {
		return errors.Wrap(err, "intermediate runtime nonce")
	}

	si, err := tx.NewSignerInfo(intermediate.Signer, nonce)
	if err != nil {
		return err
	}

	transfer, err := tx.NewTransfer(destination.Address, amount, fee, si, e.params.Fees.FeeGas)
	if err != nil {
		return err
	}

	utx, err := tx.SignRuntime(intermediate.Signer, e.params.RuntimeID, chainContext, transfer)
	if err != nil {
		return err
	}

	if err := e.gateway.SubmitRuntime(ctx, utx); err != nil {
		return errors.Wrap(err, "submit transfer")
	}

	e.log.Info().
		Str("amount", amount.String()).
		Str("fee", fee.String()).
		Str("to", destination.Display()).
		Uint64("nonce", nonce).
		Msg("Forwarded to destination")

	result.Amount = amount
	result.Fee = fee
	result.Delay = e.params.TransferDelay

	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
