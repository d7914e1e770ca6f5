package insight

import (
	"github.com/smallbiznis/insight/internal/insight/service"
	"go.uber.org/fx"
)

var Module = fx.Module("insight.service",
	fx.Provide(service.NewService),
	fx.Provide(NewRegistry),
)
