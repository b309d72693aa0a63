package app

import (
	"fmt"
	"regexp"

	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/errors"
)

// isPath defines a valid message path
var isPath = regexp.MustCompile(`^[a-z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and
// then direct each message to the registered handler.
type Router struct {
	routes map[string]submarine.Handler
}

var _ submarine.Registry = (*Router)(nil)

// NewRouter initializes a router with no routes
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]submarine.Handler),
	}
}

// Handle implements Registry interface. Messages are routed by their
// path. Registering a handler for an invalid path or an already
// registered one is a programmer error and panics.
func (r *Router) Handle(m submarine.Msg, h submarine.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this message. If none is
// registered, it returns a handler that always fails with ErrNotFound.
func (r *Router) Handler(m submarine.Msg) submarine.Handler {
	path := m.Path()
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

var _ submarine.Handler = notFoundHandler("")

// notFoundHandler always returns ErrNotFound with the message path.
type notFoundHandler string

func (path notFoundHandler) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

// Dispatcher wraps a router into a Handler that resolves the route of
// each incoming transaction's message.
type Dispatcher struct {
	router *Router
}

var _ submarine.Handler = Dispatcher{}

// NewDispatcher returns a Handler executing the routed handler for
// every transaction.
func NewDispatcher(r *Router) Dispatcher {
	return Dispatcher{router: r}
}

func (d Dispatcher) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrState, "transaction without a message")
	}
	return d.router.Handler(msg).Check(ctx, db, tx)
}

func (d Dispatcher) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrState, "transaction without a message")
	}
	return d.router.Handler(msg).Deliver(ctx, db, tx)
}
