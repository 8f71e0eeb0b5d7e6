package store

import (
	"time"

	"scopetrack/internal/platform/config"
)

// Config selects and configures the backends Open connects
type Config struct {
	AppName string // postgres application_name

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres
type PGConfig struct {
	Enabled   bool
	URL       string
	MaxConns  int32
	LogSQL    bool
	SlowQuery time.Duration

	// boot readiness; zero values take 20 attempts and 3s per ping
	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures clickhouse; Role and Tag are sent as client info
type CHConfig struct {
	Enabled bool
	URL     string
	Role    string
	Tag     string
}

// ConfigFromEnv reads DB_PG_* and DB_CH_* from root; both backends are off unless enabled
func ConfigFromEnv(root config.Conf, role, tag string) Config {
	pg, ch := root.Prefix("DB_PG_"), root.Prefix("DB_CH_")
	return Config{
		AppName: "scopetrack-" + role,
		PG: PGConfig{
			Enabled:        pg.MayBool("ENABLED", false),
			URL:            pg.MayString("URL", ""),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 4)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQuery:      time.Duration(pg.MayInt("SLOW_MS", 500)) * time.Millisecond,
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled: ch.MayBool("ENABLED", false),
			URL:     ch.MayString("URL", ""),
			Role:    role,
			Tag:     tag,
		},
	}
}
