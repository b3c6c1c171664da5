// Package config loads the folio configuration.
//
// Values are resolved in order: built-in defaults, an optional YAML file,
// then FOLIO_* environment variables. FOLIO_WORKFLOW_MAX_RETRIES overrides
// workflow.max_retries, FOLIO_OUTPUT_REDIS_ADDR overrides output.redis.addr,
// and so on.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/folio/internal/runtime"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FOLIO_"

// Providers accepted in generator.provider.
const (
	ProviderAuto    = "auto"
	ProviderGemini  = "gemini"
	ProviderOffline = "offline"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full application configuration.
type Config struct {
	Generator Generator `mapstructure:"generator"`
	Workflow  Workflow  `mapstructure:"workflow"`
	Output    Output    `mapstructure:"output"`
	Log       Log       `mapstructure:"log"`
	Server    Server    `mapstructure:"server"`
}

// Generator configures the generative collaborator.
type Generator struct {
	// Provider is auto, gemini or offline. Auto picks gemini when an API key is set.
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	APIKeyEnv   string        `mapstructure:"api_key_env"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Workflow configures the engine limits and the quality gate.
type Workflow struct {
	MaxRetries   int  `mapstructure:"max_retries"`
	// MaxSteps of 0 uses the engine default, which grows with MaxRetries.
	MaxSteps     int  `mapstructure:"max_steps"`
	MinQuestions int  `mapstructure:"min_questions"`
	SoftGate     bool `mapstructure:"soft_gate"`
}

// Output configures where artifacts go.
type Output struct {
	// Dir receives the three documents of a CLI run.
	Dir   string `mapstructure:"dir"`
	Redis Redis  `mapstructure:"redis"`
}

// Redis configures the optional Redis artifact store. Empty Addr disables it.
type Redis struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Log configures the application logger.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Server configures the HTTP adapter.
type Server struct {
	Port int `mapstructure:"port"`
}

func defaults() map[string]any {
	return map[string]any{
		"generator": map[string]any{
			"provider":    ProviderAuto,
			"model":       "gemini-2.5-pro",
			"temperature": 0.2,
			"api_key_env": "GEMINI_API_KEY",
			"base_url":    "",
			"timeout":     "60s",
		},
		"workflow": map[string]any{
			"max_retries":   3,
			"max_steps":     0,
			"min_questions": 15,
			"soft_gate":     true,
		},
		"output": map[string]any{
			"dir": "output",
			"redis": map[string]any{
				"addr":     "",
				"password": "",
				"db":       0,
				"prefix":   "folio:artifacts:",
				"ttl":      "0s",
			},
		},
		"log": map[string]any{
			"level":  "info",
			"format": "text",
		},
		"server": map[string]any{
			"port": 8080,
		},
	}
}

// Default returns the built-in configuration.
func Default() Config {
	cfg, err := decode(defaults())
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Load reads the YAML file at path (skipped when empty) and applies the
// environment overrides.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	values := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		var file map[string]any
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		if err := merge(values, file, ""); err != nil {
			return Config{}, err
		}
	}

	for _, key := range leaves(values, "") {
		if v, ok := lookup(EnvName(key)); ok {
			set(values, key, v)
		}
	}

	cfg, err := decode(values)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// EnvName returns the environment variable that overrides a dotted key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func decode(values map[string]any) (Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(values); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// merge overlays src on dst. Sections must stay sections.
func merge(dst, src map[string]any, prefix string) error {
	for k, v := range src {
		key := prefix + k
		sub, isMap := v.(map[string]any)
		existing, wasMap := dst[k].(map[string]any)
		switch {
		case isMap && wasMap:
			if err := merge(existing, sub, key+"."); err != nil {
				return err
			}
		case wasMap:
			return fmt.Errorf("%w: %s must be a section", ErrInvalidConfig, key)
		default:
			dst[k] = v
		}
	}
	return nil
}

// leaves lists the dotted keys of every scalar value, sorted.
func leaves(values map[string]any, prefix string) []string {
	var keys []string
	for k, v := range values {
		if sub, ok := v.(map[string]any); ok {
			keys = append(keys, leaves(sub, prefix+k+".")...)
			continue
		}
		keys = append(keys, prefix+k)
	}
	sort.Strings(keys)
	return keys
}

func set(values map[string]any, key, v string) {
	parts := strings.Split(key, ".")
	m := values
	for _, p := range parts[:len(parts)-1] {
		m = m[p].(map[string]any)
	}
	m[parts[len(parts)-1]] = v
}

// Validate reports settings the engine cannot run with.
func (c Config) Validate() error {
	var problems []string
	switch c.Generator.Provider {
	case ProviderAuto, ProviderGemini, ProviderOffline:
	default:
		problems = append(problems, fmt.Sprintf("generator.provider %q is not one of auto, gemini, offline", c.Generator.Provider))
	}
	if c.Generator.Timeout <= 0 {
		problems = append(problems, "generator.timeout must be positive")
	}
	if c.Workflow.MaxRetries <= 0 {
		problems = append(problems, "workflow.max_retries must be positive")
	}
	switch need := runtime.MinSteps(c.Workflow.MaxRetries); {
	case c.Workflow.MaxSteps < 0:
		problems = append(problems, "workflow.max_steps must not be negative")
	case c.Workflow.MaxSteps > 0 && c.Workflow.MaxSteps < need:
		problems = append(problems, fmt.Sprintf("workflow.max_steps %d cannot fit %d generation attempts (needs at least %d)",
			c.Workflow.MaxSteps, c.Workflow.MaxRetries, need))
	}
	if c.Workflow.MinQuestions <= 0 {
		problems = append(problems, "workflow.min_questions must be positive")
	}
	if c.Output.Redis.TTL < 0 {
		problems = append(problems, "output.redis.ttl must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// APIKey reads the generator API key from the configured variable.
func (c Config) APIKey() string {
	if c.Generator.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Generator.APIKeyEnv)
}

// ResolveProvider turns auto into gemini or offline depending on the API key.
func (c Config) ResolveProvider() string {
	if c.Generator.Provider != ProviderAuto {
		return c.Generator.Provider
	}
	if c.APIKey() != "" {
		return ProviderGemini
	}
	return ProviderOffline
}
