package http

import (
	"go.uber.org/fx"

	catalogtransport "github.com/mandikart/mandikart/internal/transport/http/catalog"
	grouptransport "github.com/mandikart/mandikart/internal/transport/http/grouporder"
	ordertransport "github.com/mandikart/mandikart/internal/transport/http/order"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	grouptransport.Module,
	catalogtransport.Module,
	ordertransport.Module,
)
