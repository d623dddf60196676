package sweeper

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mandikart/mandikart/internal/config"
	grouporder "github.com/mandikart/mandikart/internal/service/grouporder"
)

type countingReconciler struct {
	calls atomic.Int64
}

func (c *countingReconciler) Reconcile(context.Context) (grouporder.ReconcileResult, error) {
	c.calls.Add(1)
	return grouporder.ReconcileResult{}, nil
}

func TestSweeperRunsAndStops(t *testing.T) {
	rec := &countingReconciler{}
	s := &Sweeper{
		reconciler: rec,
		logger:     zap.NewNop(),
		cfg: config.GroupOrders{
			SweepEnabled:  true,
			SweepInterval: 10 * time.Millisecond,
		},
	}

	if err := s.start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	deadline := time.After(time.Second)
	for rec.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("sweeper never ticked")
		case <-time.After(5 * time.Millisecond):
		}
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.stop(stopCtx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}

	settled := rec.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if rec.calls.Load() != settled {
		t.Error("sweeper kept ticking after stop")
	}
}

func TestSweeperDisabled(t *testing.T) {
	rec := &countingReconciler{}
	s := &Sweeper{
		reconciler: rec,
		logger:     zap.NewNop(),
		cfg:        config.GroupOrders{SweepEnabled: false, SweepInterval: time.Millisecond},
	}

	if err := s.start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if rec.calls.Load() != 0 {
		t.Error("disabled sweeper must not tick")
	}
	if err := s.stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}
