// Package config loads oracle settings from YAML, with defaults and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "treeoracle.yaml"

// Config is the full runtime configuration.
type Config struct {
	Grammar  string        `mapstructure:"grammar" validate:"required,oneof=logical rna"`
	Count    int           `mapstructure:"count" validate:"gte=1,lte=1000000"`
	Seed     int64         `mapstructure:"seed"`
	Workers  int           `mapstructure:"workers" validate:"gte=1,lte=1024"`
	MaxSteps int           `mapstructure:"max_steps" validate:"gte=0"`
	Logical  LogicalConfig `mapstructure:"logical"`
	Store    StoreConfig   `mapstructure:"store"`
	HTTP     HTTPConfig    `mapstructure:"http"`
	Log      LogConfig     `mapstructure:"log"`
}

// LogicalConfig holds the truth values bound to the logical variables.
type LogicalConfig struct {
	X float64 `mapstructure:"x" validate:"gte=0,lte=1"`
	Y float64 `mapstructure:"y" validate:"gte=0,lte=1"`
}

type StoreConfig struct {
	Kind  string      `mapstructure:"kind" validate:"oneof=memory file badger redis"`
	Dir   string      `mapstructure:"dir" validate:"required_if=Kind file,required_if=Kind badger"`
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr" validate:"required,hostname_port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"gte=0"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Grammar:  "logical",
		Count:    1,
		Seed:     0,
		Workers:  4,
		MaxSteps: 1_000_000,
		Logical:  LogicalConfig{X: 0, Y: 1},
		Store: StoreConfig{
			Kind: "memory",
			Dir:  ".treeoracle/samples",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "treeoracle:sample:",
			},
		},
		HTTP: HTTPConfig{Addr: ":8080"},
		Log:  LogConfig{Level: "info"},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads path and overlays it on the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML bytes over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return FromMap(raw)
}

// FromMap decodes a generic map over the defaults and validates the result.
// Values are weakly typed, so "42" decodes into an int field.
func FromMap(raw map[string]any) (*Config, error) {
	cfg := Default()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports every violation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config:\n- %s", strings.Join(msgs, "\n- "))
}
