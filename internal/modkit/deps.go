package modkit

import (
	"scopetrack/internal/modkit/repokit"
	"scopetrack/internal/platform/config"
	"scopetrack/internal/platform/logger"
	"scopetrack/internal/platform/store"
)

// Deps is what every module constructor receives; PG and CH are nil when disabled
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
