package grouporder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mandikart/mandikart/internal/cache"
	"github.com/mandikart/mandikart/internal/config"
	"github.com/mandikart/mandikart/internal/entity"
	"github.com/mandikart/mandikart/internal/messaging"
	repo "github.com/mandikart/mandikart/internal/repository/grouporder"
	"github.com/mandikart/mandikart/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/mandikart/mandikart/service/grouporder")

// Repository is the persistence contract the coordinator depends on.
type Repository interface {
	Create(ctx context.Context, g *entity.GroupOrder) error
	GetByID(ctx context.Context, id int64) (*entity.GroupOrder, error)
	GetByReference(ctx context.Context, ref string) (*entity.GroupOrder, error)
	ListActive(ctx context.Context) ([]entity.GroupOrder, error)
	UpsertMembership(ctx context.Context, m *entity.Membership) error
	MarkCompleted(ctx context.Context, id int64) (bool, error)
	MarkExpired(ctx context.Context, id int64) (bool, error)
}

// Service coordinates bulk-buying campaigns: creation, enrollment, listing,
// and the storage-side status reconciliation.
type Service struct {
	repo      Repository
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
	now       func() time.Time
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
	Clock      func() time.Time `optional:"true"`
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	now := p.Clock
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:      p.Repository,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
		now: now,
	}
}

// CreateInput carries the caller-supplied fields for a new campaign.
type CreateInput struct {
	CreatorID   string
	ItemName    string
	Category    string
	TargetPrice float64
	Unit        string
	MinVendors  int
	Deadline    time.Time
}

// Create validates the input and persists a new active campaign with the
// creator enrolled at quantity 1.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.GroupOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "GroupOrderService.Create", trace.WithAttributes(attribute.String("group_order.item", in.ItemName)))
	defer span.End()

	now := s.now().UTC()

	category, unit, err := s.validateCreate(in, now)
	if err != nil {
		return nil, err
	}

	g := &entity.GroupOrder{
		Reference:   uuid.NewString(),
		ItemName:    strings.TrimSpace(in.ItemName),
		Category:    category,
		TargetPrice: in.TargetPrice,
		Unit:        unit,
		MinVendors:  in.MinVendors,
		Deadline:    in.Deadline.UTC(),
		Status:      entity.GroupOrderActive,
		CreatedAt:   now,
		Memberships: []entity.Membership{
			{UserID: in.CreatorID, Quantity: 1, JoinedAt: now},
		},
	}

	if err := s.repo.Create(ctx, g); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to create group order", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, g); err != nil {
		if s.logger != nil {
			s.logger.Warn("group order cache write failed", zap.Int64("id", g.ID), zap.Error(err))
		}
	}

	s.publish(ctx, Event{
		Type:         EventCreated,
		GroupOrderID: g.ID,
		Reference:    g.Reference,
		ItemName:     g.ItemName,
		Status:       string(g.Status),
		UserID:       in.CreatorID,
		Quantity:     1,
		MemberCount:  1,
		OccurredAt:   now,
	})
	return g, nil
}

func (s *Service) validateCreate(in CreateInput, now time.Time) (entity.Category, entity.Unit, error) {
	if strings.TrimSpace(in.CreatorID) == "" {
		return "", "", errorbank.Unauthorized("creator id is required")
	}
	if strings.TrimSpace(in.ItemName) == "" {
		return "", "", errorbank.BadRequest("item name is required")
	}
	category, err := entity.ParseCategory(in.Category)
	if err != nil {
		return "", "", errorbank.BadRequest("invalid category", errorbank.WithDetail("category", in.Category))
	}
	unit, err := entity.ParseUnit(in.Unit)
	if err != nil {
		return "", "", errorbank.BadRequest("invalid unit", errorbank.WithDetail("unit", in.Unit))
	}
	if in.TargetPrice <= 0 {
		return "", "", errorbank.BadRequest("target price must be positive")
	}
	if in.MinVendors < 2 {
		return "", "", errorbank.BadRequest("a group order needs at least 2 vendors", errorbank.WithDetail("min_vendors", in.MinVendors))
	}
	if !in.Deadline.After(now) {
		return "", "", errorbank.BadRequest("deadline must be in the future")
	}
	return category, unit, nil
}

// Join enrolls a retailer in an active campaign, or replaces their requested
// quantity if they already joined. The write is a single atomic upsert, so
// concurrent joins by different users cannot lose each other.
func (s *Service) Join(ctx context.Context, id int64, userID string, quantity int) (*entity.GroupOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "GroupOrderService.Join", trace.WithAttributes(
		attribute.Int64("group_order.id", id),
		attribute.String("user.id", userID),
	))
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return nil, errorbank.Unauthorized("user id is required")
	}
	if quantity < 1 {
		return nil, errorbank.BadRequest("quantity must be at least 1", errorbank.WithDetail("quantity", quantity))
	}

	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("group order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load group order", errorbank.WithCause(err))
	}
	if g.Status != entity.GroupOrderActive {
		return nil, errorbank.Conflict("group order is no longer active", errorbank.WithDetail("status", string(g.Status)))
	}

	m := &entity.Membership{
		GroupOrderID: g.ID,
		UserID:       userID,
		Quantity:     quantity,
		JoinedAt:     s.now().UTC(),
	}
	if err := s.repo.UpsertMembership(ctx, m); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to join group order", errorbank.WithCause(err))
	}

	s.invalidateCache(ctx, g.ID)

	fresh, err := s.repo.GetByID(ctx, g.ID)
	if err != nil {
		return nil, errorbank.Internal("failed to reload group order", errorbank.WithCause(err))
	}

	s.publish(ctx, Event{
		Type:         EventJoined,
		GroupOrderID: fresh.ID,
		Reference:    fresh.Reference,
		ItemName:     fresh.ItemName,
		Status:       string(fresh.Status),
		UserID:       userID,
		Quantity:     quantity,
		MemberCount:  len(fresh.Memberships),
		OccurredAt:   m.JoinedAt,
	})
	return fresh, nil
}

// ListActive returns every active campaign, soonest deadline first.
func (s *Service) ListActive(ctx context.Context) ([]entity.GroupOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "GroupOrderService.ListActive")
	defer span.End()

	gs, err := s.repo.ListActive(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list group orders", errorbank.WithCause(err))
	}
	return gs, nil
}

// Get retrieves a campaign by id, consulting cache when available.
func (s *Service) Get(ctx context.Context, id int64) (*entity.GroupOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "GroupOrderService.Get", trace.WithAttributes(attribute.Int64("group_order.id", id)))
	defer span.End()

	if g, err := s.getFromCache(ctx, id); err == nil {
		return g, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		if s.logger != nil {
			s.logger.Warn("group order cache read failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("group order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load group order", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, g); err != nil {
		if s.logger != nil {
			s.logger.Warn("group order cache write failed", zap.Int64("id", id), zap.Error(err))
		}
	}
	return g, nil
}

// ReconcileResult summarises one reconciliation pass.
type ReconcileResult struct {
	Completed int
	Expired   int
}

// Reconcile flips active campaigns whose vendor threshold is met to
// completed, and past-deadline campaigns to expired. Threshold wins when
// both hold at sweep time. Each flip is a conditional single-row update, so
// a concurrent sweep observes zero rows affected and publishes nothing.
func (s *Service) Reconcile(ctx context.Context) (ReconcileResult, error) {
	ctx, span := serviceTracer.Start(ctx, "GroupOrderService.Reconcile")
	defer span.End()

	var res ReconcileResult

	gs, err := s.repo.ListActive(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return res, errorbank.Internal("failed to list group orders", errorbank.WithCause(err))
	}

	now := s.now().UTC()
	for i := range gs {
		g := &gs[i]
		switch {
		case len(g.Memberships) >= g.MinVendors:
			flipped, err := s.repo.MarkCompleted(ctx, g.ID)
			if err != nil {
				return res, errorbank.Internal("failed to complete group order", errorbank.WithCause(err))
			}
			if flipped {
				res.Completed++
				s.invalidateCache(ctx, g.ID)
				s.publish(ctx, Event{
					Type:         EventCompleted,
					GroupOrderID: g.ID,
					Reference:    g.Reference,
					ItemName:     g.ItemName,
					Status:       string(entity.GroupOrderCompleted),
					MemberCount:  len(g.Memberships),
					OccurredAt:   now,
				})
			}
		case !now.Before(g.Deadline):
			flipped, err := s.repo.MarkExpired(ctx, g.ID)
			if err != nil {
				return res, errorbank.Internal("failed to expire group order", errorbank.WithCause(err))
			}
			if flipped {
				res.Expired++
				s.invalidateCache(ctx, g.ID)
				s.publish(ctx, Event{
					Type:         EventExpired,
					GroupOrderID: g.ID,
					Reference:    g.Reference,
					ItemName:     g.ItemName,
					Status:       string(entity.GroupOrderExpired),
					MemberCount:  len(g.Memberships),
					OccurredAt:   now,
				})
			}
		}
	}

	if s.logger != nil && (res.Completed > 0 || res.Expired > 0) {
		s.logger.Info("group orders reconciled",
			zap.Int("completed", res.Completed),
			zap.Int("expired", res.Expired),
		)
	}
	return res, nil
}

func (s *Service) publish(ctx context.Context, event Event) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal group order event", zap.Error(err))
		}
		return
	}
	key := []byte(fmt.Sprintf("group-order-%d", event.GroupOrderID))
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish group order event", zap.String("type", event.Type), zap.Error(err))
		}
	}
}

func (s *Service) cacheKey(id int64) string {
	return fmt.Sprintf("group-orders:%d", id)
}

func (s *Service) getFromCache(ctx context.Context, id int64) (*entity.GroupOrder, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.cacheKey(id))
	if err != nil {
		return nil, err
	}
	var g entity.GroupOrder
	if err := json.Unmarshal(bytes, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Service) storeInCache(ctx context.Context, g *entity.GroupOrder) error {
	if s.cache == nil || g == nil {
		return nil
	}
	bytes, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.cacheKey(g.ID), bytes, s.cacheTTL)
}

func (s *Service) invalidateCache(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cacheKey(id)); err != nil {
		if s.logger != nil {
			s.logger.Warn("group order cache delete failed", zap.Int64("id", id), zap.Error(err))
		}
	}
}
