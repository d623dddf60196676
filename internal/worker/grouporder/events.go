package grouporder

import (
	"context"
	"encoding/json"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mandikart/mandikart/internal/config"
	"github.com/mandikart/mandikart/internal/messaging"
	groupsvc "github.com/mandikart/mandikart/internal/service/grouporder"
	"github.com/mandikart/mandikart/internal/worker"
)

var workerTracer = otel.Tracer("github.com/mandikart/mandikart/worker/grouporder")

var eventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mandikart_group_order_events_total",
	Help: "Group order events consumed from the bus, by type.",
}, []string{"type"})

// Module registers group order worker handlers.
var Module = fx.Module("worker_grouporder",
	fx.Provide(
		fx.Annotate(
			NewEventHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewEventHandler sets up a worker handler that audits campaign events.
func NewEventHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.grouporders.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event groupsvc.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode group order event", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		eventsProcessed.WithLabelValues(event.Type).Inc()

		logger.Info("group order event processed",
			zap.String("type", event.Type),
			zap.Int64("id", event.GroupOrderID),
			zap.String("reference", event.Reference),
			zap.String("status", event.Status),
			zap.Int("member_count", event.MemberCount),
		)

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
