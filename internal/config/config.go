// Package config loads benchmark defaults from the environment. CLI flags
// override these values.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr        string        `env:"REDBENCH_ADDR"         envDefault:"localhost:6379"`
	Password    string        `env:"REDBENCH_PASSWORD"     envDefault:""`
	DB          int           `env:"REDBENCH_DB"           envDefault:"0"`
	Ops         int           `env:"REDBENCH_OPS"          envDefault:"10000"`
	Workers     int           `env:"REDBENCH_WORKERS"      envDefault:"1"`
	Mode        string        `env:"REDBENCH_MODE"         envDefault:"sequential"`
	Repetitions int           `env:"REDBENCH_REPETITIONS"  envDefault:"5"`
	ValueSize   int           `env:"REDBENCH_VALUE_SIZE"   envDefault:"0"`
	DialTimeout time.Duration `env:"REDBENCH_DIAL_TIMEOUT" envDefault:"5s"`
	LogLevel    string        `env:"REDBENCH_LOG_LEVEL"    envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
