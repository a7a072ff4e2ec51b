package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KazooBoye/Scribble/logger"
)

const defaultConfigName = "scribble"

// Transport kinds the client can dial with.
const (
	TransportTCP       = "tcp"
	TransportWebSocket = "ws"
)

type Config struct {
	Host      string
	Port      int
	Transport string // TransportTCP or TransportWebSocket
	WSPath    string // URL path for the websocket transport

	// TickRate is how often the consumer is expected to call Client.Tick.
	TickRate time.Duration

	// ReconnectFallbackDelay is how long a failed reconnect stays visible
	// before the client falls back to the landing phase.
	ReconnectFallbackDelay time.Duration

	Log logger.Config
}

// Load reads configuration with viper. Search order: explicit path (when
// non-empty), then ./scribble.yaml, then ./config/scribble.yaml, then env
// vars, then defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
	}

	v.SetEnvPrefix("SCRIBBLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 9090)
	v.SetDefault("server.transport", TransportTCP)
	v.SetDefault("server.ws_path", "/ws")
	v.SetDefault("client.tick_rate", "16ms")
	v.SetDefault("client.reconnect_fallback_delay", "2s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.file", "")

	// Config file is optional; env-only is fine.
	if err := v.ReadInConfig(); err != nil && path != "" {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = v.GetString("log.level")
	logCfg.Console = v.GetBool("log.console")
	logCfg.FilePath = v.GetString("log.file")

	cfg := Config{
		Host:                   strings.TrimSpace(v.GetString("server.host")),
		Port:                   v.GetInt("server.port"),
		Transport:              strings.ToLower(strings.TrimSpace(v.GetString("server.transport"))),
		WSPath:                 v.GetString("server.ws_path"),
		TickRate:               v.GetDuration("client.tick_rate"),
		ReconnectFallbackDelay: v.GetDuration("client.reconnect_fallback_delay"),
		Log:                    logCfg,
	}

	if cfg.Host == "" {
		return Config{}, fmt.Errorf("server.host must not be empty")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid server.port %d", cfg.Port)
	}
	if cfg.Transport != TransportTCP && cfg.Transport != TransportWebSocket {
		return Config{}, fmt.Errorf("unknown server.transport %q", cfg.Transport)
	}
	if cfg.TickRate <= 0 {
		return Config{}, fmt.Errorf("client.tick_rate must be positive")
	}
	if cfg.ReconnectFallbackDelay < 0 {
		return Config{}, fmt.Errorf("client.reconnect_fallback_delay must not be negative")
	}
	return cfg, nil
}
