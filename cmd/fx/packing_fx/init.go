package packing_fx

import (
	"go.uber.org/fx"
	"tabi/internal/services"
)

var Module = fx.Provide(services.NewPackingService)
