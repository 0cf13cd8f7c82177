package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr string `yaml:"addr"`
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|prod
	Service   string `yaml:"service"`   // meeting-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type Postgres struct {
	// DSN опционален: без него сервис работает без истории встреч
	DSN string `yaml:"dsn"`
}

type Meeting struct {
	ReactionTTLSec   int `yaml:"reactionTtlSec"`   // время жизни реакции
	TurnCountdownSec int `yaml:"turnCountdownSec"` // отсчёт приглашения к слову
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Logging  Logging  `yaml:"logging"`
	Postgres Postgres `yaml:"postgres"`
	Meeting  Meeting  `yaml:"meeting"`
}

func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.Meeting.ReactionTTLSec < 0 {
		return errors.New("meeting.reactionTtlSec must be >= 0")
	}
	if c.Meeting.TurnCountdownSec < 0 {
		return errors.New("meeting.turnCountdownSec must be >= 0")
	}
	// установка дефолтов, если значения не указаны
	if c.Logging.Service == "" {
		c.Logging.Service = "meeting-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	if c.Meeting.ReactionTTLSec == 0 {
		c.Meeting.ReactionTTLSec = 5
	}
	if c.Meeting.TurnCountdownSec == 0 {
		c.Meeting.TurnCountdownSec = 10
	}
	return nil
}
