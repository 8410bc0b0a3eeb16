package command

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// ExitGuard decides what an interrupt does to a running relay.
type ExitGuard struct {
	// Window is how long after the first interrupt a second one is accepted as confirmation.
	Window time.Duration
	// Disabled makes the first interrupt cancel immediately.
	Disabled bool
	// OnWarn is called on an unconfirmed interrupt.
	OnWarn func()
}

// WithExitGuard returns a context that is canceled once the operator confirms an interrupt
// (SIGINT or SIGTERM) by sending a second one within the guard window.
func WithExitGuard(parent context.Context, guard ExitGuard) (context.Context, context.CancelFunc) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := guard.watch(parent, sigCh, time.Now)

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

func (g ExitGuard) watch(parent context.Context, signals <-chan os.Signal, now func() time.Time) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		var warnedAt time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-signals:
				if g.Disabled || (!warnedAt.IsZero() && now().Sub(warnedAt) <= g.Window) {
					log.Warn().Str("signal", sig.String()).Msg("Exit confirmed, stopping relay")
					cancel()
					return
				}

				warnedAt = now()
				log.Warn().
					Str("signal", sig.String()).
					Dur("window", g.Window).
					Msg("Funds may be mid-relay (deposited into the intermediate account but not yet forwarded). Interrupt again to exit anyway")
				if g.OnWarn != nil {
					g.OnWarn()
				}
			}
		}
	}()

	return ctx, cancel
}
