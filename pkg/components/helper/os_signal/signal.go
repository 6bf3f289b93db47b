package os_signal

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/industrial-twin/aas-package-manager/pkg/models/slog_attr"
)

// Wait blocks until one of the given signals arrives or the context is
// done.
func Wait(ctx context.Context, logger *slog.Logger, signals ...os.Signal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)
	defer signal.Stop(ch)
	select {
	case sig := <-ch:
		logger.Warn("caught os signal", slog_attr.SignalKey, sig.String())
	case <-ctx.Done():
	}
}
