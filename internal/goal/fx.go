package goal

import (
	"github.com/smallbiznis/insight/internal/goal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("goal.service",
	fx.Provide(service.NewService),
)
