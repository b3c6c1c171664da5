package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/internal/config"
	"github.com/aretw0/folio/pkg/adapters/file"
	"github.com/aretw0/folio/pkg/adapters/gemini"
	"github.com/aretw0/folio/pkg/adapters/offline"
	"github.com/aretw0/folio/pkg/adapters/redis"
	"github.com/aretw0/folio/pkg/ports"
)

// newGenerator builds the configured generator and names it for the document envelopes.
func newGenerator(c config.Config) (ports.Generator, string, error) {
	switch provider := c.ResolveProvider(); provider {
	case config.ProviderGemini:
		key := c.APIKey()
		if key == "" {
			return nil, "", fmt.Errorf("%w: %s is not set", config.ErrInvalidConfig, c.Generator.APIKeyEnv)
		}
		client, err := gemini.New(
			gemini.WithAPIKey(key),
			gemini.WithBaseURL(c.Generator.BaseURL),
			gemini.WithModel(c.Generator.Model),
			gemini.WithTemperature(c.Generator.Temperature),
		)
		if err != nil {
			return nil, "", err
		}
		return client, "folio/" + client.Model(), nil
	case config.ProviderOffline:
		return offline.New(), "folio/offline", nil
	default:
		return nil, "", fmt.Errorf("%w: unknown provider %q", config.ErrInvalidConfig, provider)
	}
}

// newEngine wires the workflow from the configuration. extra options are applied last.
func newEngine(c config.Config, l *slog.Logger, extra ...folio.Option) (*folio.Engine, error) {
	gen, producer, err := newGenerator(c)
	if err != nil {
		return nil, err
	}
	l.Debug("generator selected", "provider", c.ResolveProvider(), "producer", producer)

	opts := []folio.Option{
		folio.WithGenerator(gen),
		folio.WithGeneratedBy(producer),
		folio.WithLogger(l),
		folio.WithCallTimeout(c.Generator.Timeout),
		folio.WithMaxRetries(c.Workflow.MaxRetries),
		folio.WithMaxSteps(c.Workflow.MaxSteps),
		folio.WithMinQuestions(c.Workflow.MinQuestions),
		folio.WithSoftGate(c.Workflow.SoftGate),
	}
	return folio.New(append(opts, extra...)...)
}

// storeCloser is implemented by stores holding a connection.
type storeCloser interface {
	Close() error
}

// newStore returns the Redis store when configured, else a file store under the output dir.
func newStore(c config.Config) ports.ArtifactStore {
	r := c.Output.Redis
	if strings.TrimSpace(r.Addr) == "" {
		return file.New(c.Output.Dir)
	}
	return redis.New(r.Addr, r.Password, r.DB, redis.WithPrefix(r.Prefix), redis.WithTTL(r.TTL))
}
