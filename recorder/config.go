package recorder

import (
	"time"
)

type Config struct {
	// Epoch is the wall-clock instant recorded as offset zero.
	Epoch time.Time `yaml:"epoch" json:"epoch"`

	// FlushInterval is the width of the buckets closed by the background routine.
	FlushInterval time.Duration `yaml:"flushInterval" json:"flushInterval"`
}

func (cfg *Config) init() {
	if cfg.Epoch.IsZero() {
		cfg.Epoch = time.Now()
	}

	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Minute
	}
}
