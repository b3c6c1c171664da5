// Package gemini implements ports.Generator on the Google Gen AI SDK
// (google.golang.org/genai) against the Gemini API.
//
// The system prompt travels as the system instruction. Structured calls set
// the response MIME type to application/json and pass the schema as the
// response schema.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/aretw0/folio/pkg/ports"
	"github.com/aretw0/folio/pkg/schema"
	"google.golang.org/genai"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.5-pro"
	// DefaultTemperature keeps extraction and FAQ answers close to the input.
	DefaultTemperature = 0.2
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

// Client implements ports.Generator for Gemini.
type Client struct {
	models      *genai.Models
	model       string
	temperature float32
}

type settings struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

// Option configures a Client.
type Option func(*settings)

// WithAPIKey sets the API key for authentication.
func WithAPIKey(key string) Option {
	return func(s *settings) {
		s.apiKey = key
	}
}

// WithBaseURL overrides the SDK's default endpoint.
func WithBaseURL(url string) Option {
	return func(s *settings) {
		if url != "" {
			s.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithModel selects the model.
func WithModel(model string) Option {
	return func(s *settings) {
		if model != "" {
			s.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(s *settings) {
		s.temperature = t
	}
}

// WithHTTPClient provides a custom HTTP client for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) {
		if hc != nil {
			s.httpClient = hc
		}
	}
}

// New creates a Gemini client with the given options. An API key is required.
func New(opts ...Option) (*Client, error) {
	s := settings{
		model:       DefaultModel,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &genai.ClientConfig{
		APIKey:     s.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: s.httpClient,
	}
	if s.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: s.baseURL + "/"}
	}
	// The context is only used to resolve credentials, which an API key makes unnecessary.
	gc, err := genai.NewClient(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		models:      gc.Models,
		model:       s.model,
		temperature: float32(s.temperature),
	}, nil
}

// FromEnv creates a Client configured from GEMINI_API_KEY (or GOOGLE_API_KEY)
// and the optional GEMINI_BASE_URL. Extra options are applied last.
func FromEnv(opts ...Option) (*Client, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		key = os.Getenv("GOOGLE_API_KEY")
	}
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	base := []Option{WithAPIKey(key), WithBaseURL(os.Getenv("GEMINI_BASE_URL"))}
	return New(append(base, opts...)...)
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Generate implements ports.Generator.
func (c *Client) Generate(ctx context.Context, p ports.Prompt) (string, error) {
	return c.complete(ctx, p, c.config(p, nil))
}

// StructuredGenerate implements ports.Generator.
// The returned document is guaranteed to be valid JSON.
func (c *Client) StructuredGenerate(ctx context.Context, p ports.Prompt, s ports.Schema) (json.RawMessage, error) {
	responseSchema, err := toSchema(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("invalid %s schema: %w", s.Name, err)
	}
	text, err := c.complete(ctx, p, c.config(p, responseSchema))
	if err != nil {
		return nil, err
	}
	doc := schema.Unfence(text)
	if !json.Valid([]byte(doc)) {
		return nil, fmt.Errorf("%w: %s reply is not JSON", ports.ErrMalformedResponse, s.Name)
	}
	return json.RawMessage(doc), nil
}

func (c *Client) config(p ports.Prompt, responseSchema *genai.Schema) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if p.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}
	if responseSchema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = responseSchema
	}
	return cfg
}

func (c *Client) complete(ctx context.Context, p ports.Prompt, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(p.User), cfg)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", translateError(err)
	}
	return text(resp)
}
