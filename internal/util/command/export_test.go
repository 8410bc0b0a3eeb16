package command

import (
	"context"
	"os"
	"time"
)

func (g ExitGuard) WatchForTest(parent context.Context, signals <-chan os.Signal, now func() time.Time) (context.Context, context.CancelFunc) {
	return g.watch(parent, signals, now)
}
