package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	WS      WSConfig      `mapstructure:"ws"`
	Alert   AlertConfig   `mapstructure:"alert"`
	Poll    PollConfig    `mapstructure:"poll"`
	Status  StatusConfig  `mapstructure:"status"`
	Session SessionConfig `mapstructure:"session"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type WSConfig struct {
	// URL of the realtime endpoint. When empty it is derived from api.base_url
	// by swapping the scheme to ws/wss.
	URL string `mapstructure:"url"`
}

type AlertConfig struct {
	Threshold int `mapstructure:"threshold"`
}

type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type StatusConfig struct {
	Addr string `mapstructure:"addr"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

func Load() (*Config, error) {
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/configs")
	viper.SetConfigName("settings")
	viper.SetConfigType("yml")

	viper.SetDefault("api.base_url", "http://localhost:8080")
	viper.SetDefault("ws.url", "")
	viper.SetDefault("alert.threshold", 60)
	viper.SetDefault("poll.interval", 30*time.Second)
	viper.SetDefault("status.addr", ":8090")
	viper.SetDefault("session.path", defaultSessionPath())

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// WebSocketURL returns the configured realtime endpoint, deriving it from the
// API base URL when none is set (http -> ws, https -> wss).
func (c *Config) WebSocketURL() string {
	if c.WS.URL != "" {
		return c.WS.URL
	}
	base := c.API.BaseURL
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".monitor-swiezosci", "session.json")
}
