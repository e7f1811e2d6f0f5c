package resource

import (
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/l"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Dir holds one YAML document per resource.
	Dir    string `yaml:"dir" json:"dir"`
	Suffix string `yaml:"suffix" json:"suffix"`

	// RedisDSN selects the redis fetcher when set, e.g. redis://localhost:6379/0.
	RedisDSN    string `yaml:"redisDSN" json:"redisDSN"`
	RedisKeyPre string `yaml:"redisKeyPre" json:"redisKeyPre"`
}

func (cfg *Config) init() {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}

	if cfg.Suffix == "" {
		cfg.Suffix = ".yaml"
	}

	if cfg.RedisKeyPre == "" {
		cfg.RedisKeyPre = "resource"
	}
}

func LoadConfig(file string) (cfg *Config, err error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return
	}

	cfg = &Config{}

	err = yaml.Unmarshal(d, cfg)
	if err != nil {
		cfg = nil

		return
	}

	cfg.init()

	return
}

// NewFetcher builds the fetcher the configuration asks for.
func NewFetcher(cfg *Config, logger l.Wrapper) (Fetcher, error) {
	return NewStore(cfg, logger)
}

// NewStore is NewFetcher for callers that also record samples.
func NewStore(cfg *Config, logger l.Wrapper) (Store, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	cfg.init()

	if cfg.RedisDSN == "" {
		return NewFileFetcher(cfg, logger), nil
	}

	options, err := redis.ParseURL(cfg.RedisDSN)
	if err != nil {
		return nil, err
	}

	return NewRedisFetcher(redis.NewClient(options), cfg.RedisKeyPre, logger), nil
}
