package catalog

import (
	"go.uber.org/fx"

	repo "github.com/mandikart/mandikart/internal/repository/catalog"
)

// Module provides the catalog service to Fx.
var Module = fx.Options(
	fx.Provide(func(r *repo.Repository) Repository { return r }),
	fx.Provide(NewService),
)
