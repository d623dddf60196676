package grouporder

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mandikart/mandikart/internal/config"
	"github.com/mandikart/mandikart/internal/dto"
	"github.com/mandikart/mandikart/internal/entity"
	"github.com/mandikart/mandikart/internal/presentation/http/response"
	service "github.com/mandikart/mandikart/internal/service/grouporder"
	"github.com/mandikart/mandikart/internal/transport/http/middleware"
	"github.com/mandikart/mandikart/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/mandikart/mandikart/transport/http/grouporder")

// Handler exposes group order endpoints over HTTP.
type Handler struct {
	svc          *service.Service
	pollInterval time.Duration
	now          func() time.Time
}

// NewHandler constructs a group order Handler.
func NewHandler(svc *service.Service, cfg config.Config) *Handler {
	return &Handler{
		svc:          svc,
		pollInterval: cfg.GroupOrders.PollInterval,
		now:          time.Now,
	}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/group-orders")
	g.POST("", h.create)
	g.GET("", h.listActive)
	g.GET("/:id", h.getByID)
	g.POST("/:id/join", h.join)
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	userID := middleware.UserID(c)
	if userID == "" {
		return b.WithError(errorbank.Unauthorized("authentication required")).Build()
	}

	var payload struct {
		ItemName    string    `json:"item_name"`
		Category    string    `json:"category"`
		TargetPrice float64   `json:"target_price"`
		Unit        string    `json:"unit"`
		MinVendors  int       `json:"min_vendors"`
		Deadline    time.Time `json:"deadline"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "group-orders.create", trace.WithAttributes(
		attribute.String("group_order.item", payload.ItemName),
	))
	defer span.End()

	g, err := h.svc.Create(ctx, service.CreateInput{
		CreatorID:   userID,
		ItemName:    payload.ItemName,
		Category:    payload.Category,
		TargetPrice: payload.TargetPrice,
		Unit:        payload.Unit,
		MinVendors:  payload.MinVendors,
		Deadline:    payload.Deadline,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(h.toDTO(g, userID)).Build()
}

func (h *Handler) listActive(c echo.Context) error {
	b := response.New(c)
	userID := middleware.UserID(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "group-orders.listActive")
	defer span.End()

	gs, err := h.svc.ListActive(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.GroupOrderResponse, len(gs))
	for i := range gs {
		out[i] = h.toDTO(&gs[i], userID)
	}

	// Clients poll this endpoint; tell them how often.
	return b.WithData(out).WithMeta("poll_interval_seconds", int(h.pollInterval.Seconds())).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "group-orders.getByID", trace.WithAttributes(attribute.Int64("group_order.id", id)))
	defer span.End()

	g, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(h.toDTO(g, middleware.UserID(c))).Build()
}

func (h *Handler) join(c echo.Context) error {
	b := response.New(c)

	userID := middleware.UserID(c)
	if userID == "" {
		return b.WithError(errorbank.Unauthorized("authentication required")).Build()
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "group-orders.join", trace.WithAttributes(
		attribute.Int64("group_order.id", id),
		attribute.String("user.id", userID),
	))
	defer span.End()

	g, err := h.svc.Join(ctx, id, userID, payload.Quantity)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(h.toDTO(g, userID)).Build()
}

func (h *Handler) toDTO(g *entity.GroupOrder, userID string) dto.GroupOrderResponse {
	members := make([]dto.MembershipResponse, len(g.Memberships))
	for i, m := range g.Memberships {
		members[i] = dto.MembershipResponse{
			UserID:   m.UserID,
			Quantity: m.Quantity,
			JoinedAt: m.JoinedAt,
		}
	}
	return dto.GroupOrderResponse{
		ID:              g.ID,
		Reference:       g.Reference,
		ItemName:        g.ItemName,
		Category:        string(g.Category),
		TargetPrice:     g.TargetPrice,
		Unit:            string(g.Unit),
		MinVendors:      g.MinVendors,
		Deadline:        g.Deadline,
		Status:          string(g.Status),
		CreatedAt:       g.CreatedAt,
		Members:         members,
		MemberCount:     len(g.Memberships),
		TotalQuantity:   service.TotalQuantity(g.Memberships),
		ProgressPercent: service.ProgressPercent(len(g.Memberships), g.MinVendors),
		TimeRemaining:   service.TimeRemaining(g.Deadline, h.now()).String(),
		IsMember:        userID != "" && service.IsMember(g, userID),
	}
}
