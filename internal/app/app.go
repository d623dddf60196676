package app

import (
	"go.uber.org/fx"

	"github.com/mandikart/mandikart/internal/cache"
	"github.com/mandikart/mandikart/internal/config"
	"github.com/mandikart/mandikart/internal/database"
	"github.com/mandikart/mandikart/internal/logger"
	"github.com/mandikart/mandikart/internal/messaging"
	"github.com/mandikart/mandikart/internal/observability"
	repositorycatalog "github.com/mandikart/mandikart/internal/repository/catalog"
	repositorygrouporder "github.com/mandikart/mandikart/internal/repository/grouporder"
	repositoryorder "github.com/mandikart/mandikart/internal/repository/order"
	grpcserver "github.com/mandikart/mandikart/internal/server/grpc"
	httpserver "github.com/mandikart/mandikart/internal/server/http"
	servicecatalog "github.com/mandikart/mandikart/internal/service/catalog"
	servicegrouporder "github.com/mandikart/mandikart/internal/service/grouporder"
	serviceorder "github.com/mandikart/mandikart/internal/service/order"
	"github.com/mandikart/mandikart/internal/sweeper"
	transporthttp "github.com/mandikart/mandikart/internal/transport/http"
	"github.com/mandikart/mandikart/internal/worker"
	workergrouporder "github.com/mandikart/mandikart/internal/worker/grouporder"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositorygrouporder.Module,
	repositorycatalog.Module,
	repositoryorder.Module,
	servicegrouporder.Module,
	servicecatalog.Module,
	serviceorder.Module,
)

// HTTP wires the HTTP and gRPC transports plus the status sweeper on top of
// the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	grpcserver.Module,
	transporthttp.Module,
	sweeper.Module,
)

// Worker exposes background message processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workergrouporder.Module,
)

// Module is the default application wiring (API serving).
var Module = HTTP
