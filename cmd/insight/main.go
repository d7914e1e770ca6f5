package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/insight/internal/account"
	"github.com/smallbiznis/insight/internal/clock"
	"github.com/smallbiznis/insight/internal/config"
	"github.com/smallbiznis/insight/internal/conversion"
	"github.com/smallbiznis/insight/internal/eventlog"
	"github.com/smallbiznis/insight/internal/goal"
	"github.com/smallbiznis/insight/internal/insight"
	"github.com/smallbiznis/insight/internal/logger"
	"github.com/smallbiznis/insight/internal/metrics"
	"github.com/smallbiznis/insight/internal/migration"
	"github.com/smallbiznis/insight/internal/property"
	"github.com/smallbiznis/insight/internal/span"
	"github.com/smallbiznis/insight/internal/updatelog"
	"github.com/smallbiznis/insight/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		metrics.Module,
		migration.Module,

		span.Module,
		updatelog.Module,
		account.Module,
		insight.Module,

		goal.Module,
		property.Module,
		eventlog.Module,
		conversion.Module,

		fx.Invoke(func(r *insight.Registry) {
			_ = r
		}),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
