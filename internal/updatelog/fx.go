package updatelog

import (
	"github.com/smallbiznis/insight/internal/updatelog/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("updatelog.repository",
	fx.Provide(repository.Provide),
)
