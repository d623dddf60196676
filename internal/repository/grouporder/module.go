package grouporder

import "go.uber.org/fx"

// Module provides the group order repository to Fx.
var Module = fx.Provide(NewRepository)
