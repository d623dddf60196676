package catalog

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
	service "github.com/mandikart/mandikart/internal/service/catalog"
	"github.com/mandikart/mandikart/internal/transport/http/middleware"
	"github.com/mandikart/mandikart/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/mandikart/mandikart/transport/http/catalog")

// Handler exposes catalog endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a catalog Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/products")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.getByID)
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	supplierID := middleware.UserID(c)
	if supplierID == "" {
		return b.WithError(errorbank.Unauthorized("authentication required")).Build()
	}

	var payload struct {
		Name         string  `json:"name"`
		Category     string  `json:"category"`
		Unit         string  `json:"unit"`
		PricePerUnit float64 `json:"price_per_unit"`
		StockQty     int     `json:"stock_qty"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.create", trace.WithAttributes(
		attribute.String("product.name", payload.Name),
	))
	defer span.End()

	p, err := h.svc.Create(ctx, service.CreateInput{
		SupplierID:   supplierID,
		Name:         payload.Name,
		Category:     payload.Category,
		Unit:         payload.Unit,
		PricePerUnit: payload.PricePerUnit,
		StockQty:     payload.StockQty,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(toDTO(p)).Build()
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "products.list")
	defer span.End()

	ps, err := h.svc.List(ctx, c.QueryParam("category"))
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.ProductResponse, len(ps))
	for i := range ps {
		out[i] = toDTO(&ps[i])
	}
	return b.WithData(out).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.getByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	p, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(toDTO(p)).Build()
}

func toDTO(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		SupplierID:   p.SupplierID,
		Name:         p.Name,
		Category:     string(p.Category),
		Unit:         string(p.Unit),
		PricePerUnit: p.PricePerUnit,
		StockQty:     p.StockQty,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
