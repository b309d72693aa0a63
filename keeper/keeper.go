package keeper

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/errors"
	"github.com/tidewater-labs/submarine/x/vault"
)

// HeightSource reports the current block height of the hosting chain.
type HeightSource interface {
	CurrentHeight(ctx context.Context) (int64, error)
}

// Config holds the keeper settings.
type Config struct {
	// Cadence is how often the watched vaults are evaluated. Defaults
	// to one minute.
	Cadence time.Duration

	// VaultIDs enumerates the vaults this keeper watches.
	VaultIDs [][]byte
}

// Service periodically delivers a run_schedule message for every
// watched vault. Each delivery runs in its own cache wrap, a failing
// vault does not affect the others.
type Service struct {
	log     zerolog.Logger
	cfg     Config
	db      submarine.CacheableKVStore
	handler submarine.Deliverer
	heights HeightSource

	mu sync.Mutex
	c  *cron.Cron
}

// New returns a keeper service watching the configured vaults. The
// handler must route run_schedule messages, usually the vault
// extension handler.
func New(cfg Config, db submarine.CacheableKVStore, handler submarine.Deliverer, heights HeightSource, log zerolog.Logger) *Service {
	if cfg.Cadence <= 0 {
		cfg.Cadence = time.Minute
	}
	return &Service{
		log:     log,
		cfg:     cfg,
		db:      db,
		handler: handler,
		heights: heights,
	}
}

// Start begins the periodic evaluation. Calling Start on a running
// service is a no-op.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		return
	}
	s.c = cron.New()
	s.c.Schedule(cron.Every(s.cfg.Cadence), cron.FuncJob(func() {
		s.runOnce(context.Background())
	}))
	s.c.Start()
	s.log.Info().
		Dur("cadence", s.cfg.Cadence).
		Int("vaults", len(s.cfg.VaultIDs)).
		Msg("keeper started")
}

// Stop halts the periodic evaluation. A run in progress completes.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		return
	}
	<-s.c.Stop().Done()
	s.c = nil
	s.log.Info().Msg("keeper stopped")
}

// runOnce evaluates every watched vault at the current height. Each
// vault is processed in its own cache so a failure only discards that
// vault's changes.
func (s *Service) runOnce(ctx context.Context) {
	height, err := s.heights.CurrentHeight(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("cannot read current height")
		return
	}
	ctx = submarine.WithHeight(ctx, height)
	ctx = submarine.WithLogger(ctx, s.log)

	for _, vaultID := range s.cfg.VaultIDs {
		cache := s.db.CacheWrap()
		res, err := s.handler.Deliver(ctx, cache, &schedTx{
			msg: &vault.RunScheduleMsg{VaultID: vaultID},
		})
		if err != nil {
			cache.Discard()
			s.log.Warn().Err(err).
				Hex("vault", vaultID).
				Int64("height", height).
				Msg("schedule evaluation failed")
			continue
		}
		if err := cache.Write(); err != nil {
			s.log.Error().Err(errors.Wrap(err, "cannot write cache")).
				Hex("vault", vaultID).
				Msg("evaluation result lost")
			continue
		}
		s.log.Debug().
			Hex("vault", vaultID).
			Int64("height", height).
			Bool("paid", feePaid(res)).
			Msg("schedule evaluated")
	}
}

func feePaid(res *submarine.DeliverResult) bool {
	if res == nil {
		return false
	}
	for _, tag := range res.Tags {
		if string(tag.Key) == "vault:fee-paid" {
			return true
		}
	}
	return false
}

// schedTx wraps a message so the handler can process it outside of a
// signed transaction.
type schedTx struct {
	msg submarine.Msg
}

var _ submarine.Tx = (*schedTx)(nil)

func (tx *schedTx) GetMsg() (submarine.Msg, error) {
	return tx.msg, nil
}
