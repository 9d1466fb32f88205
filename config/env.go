package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

const DefaultRefresh = 60 * time.Second
const MinRefresh = 30 * time.Second

// Env is the process-level configuration layered under the CLI flags.
// Empty API settings leave the client defaults in place.
type Env struct {
	SettingsPath    string        `env:"WIDGET_SETTINGS" envDefault:"settings.ini"`
	RefreshInterval time.Duration `env:"WIDGET_REFRESH_INTERVAL" envDefault:"60s"`
	APIURL          string        `env:"WIDGET_API_URL"`
	APITimeout      time.Duration `env:"WIDGET_API_TIMEOUT"`
	Language        string        `env:"WIDGET_LANGUAGE"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
}

func ReadEnv() (Env, error) {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, err
	}
	e.RefreshInterval = NormalizeRefresh(e.RefreshInterval)
	return e, nil
}

// NormalizeRefresh maps intervals below MinRefresh to DefaultRefresh.
func NormalizeRefresh(d time.Duration) time.Duration {
	if d < MinRefresh {
		return DefaultRefresh
	}
	return d
}
