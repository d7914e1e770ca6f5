package eventlog

import (
	"github.com/smallbiznis/insight/internal/eventlog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("eventlog.service",
	fx.Provide(service.NewService),
)
