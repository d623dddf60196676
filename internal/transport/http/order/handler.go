package order

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mandikart/mandikart/internal/dto"
	"github.com/mandikart/mandikart/internal/entity"
	"github.com/mandikart/mandikart/internal/presentation/http/response"
	service "github.com/mandikart/mandikart/internal/service/order"
	"github.com/mandikart/mandikart/internal/transport/http/middleware"
	"github.com/mandikart/mandikart/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/mandikart/mandikart/transport/http/order")

// Handler exposes direct order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/orders")
	g.POST("", h.place)
	g.GET("", h.listMine)
	g.GET("/:id", h.getByID)
}

func (h *Handler) place(c echo.Context) error {
	b := response.New(c)

	retailerID := middleware.UserID(c)
	if retailerID == "" {
		return b.WithError(errorbank.Unauthorized("authentication required")).Build()
	}

	var payload struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.place", trace.WithAttributes(
		attribute.Int64("product.id", payload.ProductID),
	))
	defer span.End()

	order, err := h.svc.Place(ctx, service.PlaceInput{
		RetailerID: retailerID,
		ProductID:  payload.ProductID,
		Quantity:   payload.Quantity,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(toDTO(order)).Build()
}

func (h *Handler) listMine(c echo.Context) error {
	b := response.New(c)

	retailerID := middleware.UserID(c)
	if retailerID == "" {
		return b.WithError(errorbank.Unauthorized("authentication required")).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.listMine")
	defer span.End()

	orders, err := h.svc.ListForRetailer(ctx, retailerID)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		out[i] = toDTO(&orders[i])
	}
	return b.WithData(out).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(toDTO(order)).Build()
}

func toDTO(order *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:         order.ID,
		Number:     order.Number,
		RetailerID: order.RetailerID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		UnitPrice:  order.UnitPrice,
		Total:      order.Total,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}
