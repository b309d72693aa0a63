package submarine

import (
	"context"
	"regexp"

	"github.com/rs/zerolog"
	"github.com/tidewater-labs/submarine/errors"
)

// Context is just a result of context.Context
// Using this alias allows us to control the imports
type Context = context.Context

type contextKey int // local to the submarine module

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
	contextKeyLogger
)

// IsValidChainID is the RegExp to ensure valid chain IDs
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// WithHeight sets the block height for the Context.
// The height is the monotonic counter provided by the hosting
// environment; it must never decrease between operations.
func WithHeight(ctx Context, height int64) Context {
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height and whether it was set.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithChainID sets the chain id for the Context.
// Panics if the chain id was already set or is invalid.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic(errors.Wrapf(errors.ErrInput, "chain id: %v", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id from the Context.
// Panics if the chain id was not set, as this is a bug in setting
// up the environment, not a runtime condition.
func GetChainID(ctx Context) string {
	val, ok := ctx.Value(contextKeyChainID).(string)
	if !ok {
		panic("chain id not set")
	}
	return val
}

// WithLogger sets the logger for the Context.
func WithLogger(ctx Context, logger zerolog.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger from the Context, or a no-op
// logger if none was set.
func GetLogger(ctx Context) zerolog.Logger {
	if val, ok := ctx.Value(contextKeyLogger).(zerolog.Logger); ok {
		return val
	}
	return zerolog.Nop()
}
