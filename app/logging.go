package app

import (
	"time"

	"github.com/tidewater-labs/submarine"
)

// Logging is a decorator to log messages as they pass through the
// stack. The logger is taken from the context, a missing logger
// discards everything.
type Logging struct{}

var _ submarine.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> warn, success -> debug
func (Logging) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx, next submarine.Checker) (*submarine.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	logDuration(ctx, tx, start, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx, next submarine.Deliverer) (*submarine.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logDuration(ctx, tx, start, err, false)
	return res, err
}

func logDuration(ctx submarine.Context, tx submarine.Tx, start time.Time, err error, lowPrio bool) {
	logger := submarine.GetLogger(ctx)

	event := logger.Info()
	switch {
	case err != nil && lowPrio:
		event = logger.Warn().Err(err)
	case err != nil:
		event = logger.Error().Err(err)
	case lowPrio:
		event = logger.Debug()
	}
	event.
		Str("path", submarine.GetPath(tx)).
		Dur("duration", time.Since(start)).
		Msg("processed")
}
