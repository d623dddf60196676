package grouporder

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mandikart/mandikart/internal/database"
	"github.com/mandikart/mandikart/internal/entity"
)

var repoTracer = otel.Tracer("github.com/mandikart/mandikart/repository/grouporder")

// ErrNotFound is returned when a group order is missing.
var ErrNotFound = errors.New("group order not found")

// Repository encapsulates read/write access for group orders and their
// memberships.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create persists a new group order together with its creator membership in
// one transaction.
func (r *Repository) Create(ctx context.Context, g *entity.GroupOrder) error {
	if g == nil {
		return errors.New("nil group order")
	}
	ctx, span := repoTracer.Start(ctx, "GroupOrderRepository.Create", trace.WithAttributes(attribute.String("group_order.item", g.ItemName)))
	defer span.End()

	err := r.writer.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(g).Exec(ctx); err != nil {
			return err
		}
		for i := range g.Memberships {
			g.Memberships[i].GroupOrderID = g.ID
		}
		if len(g.Memberships) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&g.Memberships).Exec(ctx)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// GetByID fetches a group order with memberships ordered by join time.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.GroupOrder, error) {
	ctx, span := repoTracer.Start(ctx, "GroupOrderRepository.GetByID", trace.WithAttributes(attribute.Int64("group_order.id", id)))
	defer span.End()

	g := new(entity.GroupOrder)
	err := r.reader.NewSelect().Model(g).
		Relation("Memberships", sortMemberships).
		Where("group_order.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return g, nil
}

// GetByReference fetches a group order by its external reference.
func (r *Repository) GetByReference(ctx context.Context, ref string) (*entity.GroupOrder, error) {
	ctx, span := repoTracer.Start(ctx, "GroupOrderRepository.GetByReference", trace.WithAttributes(attribute.String("group_order.reference", ref)))
	defer span.End()

	g := new(entity.GroupOrder)
	err := r.reader.NewSelect().Model(g).
		Relation("Memberships", sortMemberships).
		Where("group_order.reference = ?", ref).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return g, nil
}

// ListActive returns every active group order, soonest deadline first.
func (r *Repository) ListActive(ctx context.Context) ([]entity.GroupOrder, error) {
	ctx, span := repoTracer.Start(ctx, "GroupOrderRepository.ListActive")
	defer span.End()

	var gs []entity.GroupOrder
	err := r.reader.NewSelect().Model(&gs).
		Relation("Memberships", sortMemberships).
		Where("group_order.status = ?", entity.GroupOrderActive).
		Order("deadline ASC").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return gs, nil
}

// UpsertMembership atomically inserts or replaces one retailer's enrollment.
// The unique (group_order_id, user_id) key makes concurrent joins safe: a
// re-join replaces the quantity instead of adding a row, and two different
// users never clobber each other's membership.
func (r *Repository) UpsertMembership(ctx context.Context, m *entity.Membership) error {
	if m == nil {
		return errors.New("nil membership")
	}
	ctx, span := repoTracer.Start(ctx, "GroupOrderRepository.UpsertMembership", trace.WithAttributes(
		attribute.Int64("group_order.id", m.GroupOrderID),
		attribute.String("user.id", m.UserID),
	))
	defer span.End()

	_, err := r.writer.NewInsert().Model(m).
		On("CONFLICT (group_order_id, user_id) DO UPDATE").
		Set("quantity = EXCLUDED.quantity").
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert failed")
	}
	return err
}

// MarkCompleted flips an active group order to completed. Returns false when
// the order was already terminal, so the transition stays forward-only even
// under concurrent sweeps.
func (r *Repository) MarkCompleted(ctx context.Context, id int64) (bool, error) {
	return r.transition(ctx, id, entity.GroupOrderCompleted)
}

// MarkExpired flips an active group order to expired.
func (r *Repository) MarkExpired(ctx context.Context, id int64) (bool, error) {
	return r.transition(ctx, id, entity.GroupOrderExpired)
}

func (r *Repository) transition(ctx context.Context, id int64, to entity.GroupOrderStatus) (bool, error) {
	ctx, span := repoTracer.Start(ctx, "GroupOrderRepository.transition", trace.WithAttributes(
		attribute.Int64("group_order.id", id),
		attribute.String("group_order.status", string(to)),
	))
	defer span.End()

	res, err := r.writer.NewUpdate().Model((*entity.GroupOrder)(nil)).
		Set("status = ?", to).
		Where("id = ?", id).
		Where("status = ?", entity.GroupOrderActive).
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func sortMemberships(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("joined_at ASC")
}
