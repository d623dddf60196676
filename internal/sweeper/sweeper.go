package sweeper

import (
	"context"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mandikart/mandikart/internal/config"
	grouporder "github.com/mandikart/mandikart/internal/service/grouporder"
)

// Reconciler is what the sweeper drives on every tick.
type Reconciler interface {
	Reconcile(ctx context.Context) (grouporder.ReconcileResult, error)
}

// Sweeper periodically reconciles group order statuses in storage, flipping
// active campaigns to completed or expired. Without it those transitions
// would exist only as display-side computations.
type Sweeper struct {
	reconciler Reconciler
	logger     *zap.Logger
	cfg        config.GroupOrders
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// New constructs a Sweeper.
func New(svc *grouporder.Service, logger *zap.Logger, cfg config.Config) *Sweeper {
	return &Sweeper{
		reconciler: svc,
		logger:     logger,
		cfg:        cfg.GroupOrders,
	}
}

// Module wires the sweeper into the Fx lifecycle.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, s *Sweeper) {
		lc.Append(fx.Hook{
			OnStart: s.start,
			OnStop:  s.stop,
		})
	}),
)

func (s *Sweeper) start(ctx context.Context) error {
	if !s.cfg.SweepEnabled {
		s.logger.Info("group order sweeper disabled")

		return nil
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(runCtx)
	}()

	s.logger.Info("group order sweeper started", zap.Duration("interval", s.cfg.SweepInterval))

	return nil
}

func (s *Sweeper) stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		s.logger.Info("group order sweeper stopped")

		return nil
	}
}

func (s *Sweeper) loop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.cfg.SweepInterval)
	defer cancel()

	res, err := s.reconciler.Reconcile(sweepCtx)
	if err != nil {
		s.logger.Error("group order sweep failed", zap.Error(err))

		return
	}
	if res.Completed > 0 || res.Expired > 0 {
		s.logger.Info("group order sweep finished",
			zap.Int("completed", res.Completed),
			zap.Int("expired", res.Expired),
		)
	}
}
