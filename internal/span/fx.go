package span

import (
	"github.com/smallbiznis/insight/internal/span/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("span.repository",
	fx.Provide(repository.Provide),
)
