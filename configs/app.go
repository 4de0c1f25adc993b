package configs

import (
	"os"
	"time"
)

type AppConfigs struct {
	Addr            string        // listen address for the HTTP server
	DBPath          string        // SQLite database file; empty means the OS default location
	MigrationsURL   string        // golang-migrate source URL
	RedisAddr       string        // heartbeat broadcast target; empty disables the heartbeat job
	ServiceID       string        // identity announced on the heartbeat channel
	MetricsEnabled  bool
	WorkerInterval  time.Duration // pause between queue polls when no message is available
	HeartbeatEvery  time.Duration
	QueueDepthEvery time.Duration
	ServerConfig    ServerConfig
}

type ServerConfig struct {
	Timeouts ServerTimeouts
}

type ServerTimeouts struct {
	Handle     time.Duration
	Write      time.Duration
	Read       time.Duration
	ReadHeader time.Duration
	Idle       time.Duration
}

func NewAppConfig() *AppConfigs {
	return &AppConfigs{
		Addr:            envOr("STAYFLOW_ADDR", "localhost:8080"),
		DBPath:          os.Getenv("STAYFLOW_DB_PATH"),
		MigrationsURL:   envOr("STAYFLOW_MIGRATIONS_URL", "file://db/migrations"),
		RedisAddr:       os.Getenv("STAYFLOW_REDIS_ADDR"),
		ServiceID:       envOr("STAYFLOW_SERVICE_ID", "stayflow-default"),
		MetricsEnabled:  os.Getenv("STAYFLOW_METRICS_ENABLED") != "false",
		WorkerInterval:  1 * time.Second,
		HeartbeatEvery:  5 * time.Second,
		QueueDepthEvery: 15 * time.Second,
		ServerConfig: ServerConfig{
			Timeouts: ServerTimeouts{
				Handle:     30 * time.Second,
				Write:      35 * time.Second,
				Read:       35 * time.Second,
				ReadHeader: 10 * time.Second,
				Idle:       5 * time.Minute,
			},
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
