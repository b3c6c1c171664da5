package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/folio/pkg/ports"
	"google.golang.org/genai"
)

// toSchema converts a response schema definition into the SDK type.
// Definitions already use the Gemini dialect, so the JSON shapes match.
func toSchema(def map[string]any) (*genai.Schema, error) {
	if len(def) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, err
	}
	var s genai.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// text joins the non-thought parts of the first candidate.
func text(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: empty response", ports.ErrMalformedResponse)
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", &BlockedError{Reason: string(fb.BlockReason)}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates", ports.ErrMalformedResponse)
	}
	c := resp.Candidates[0]
	switch reason := string(c.FinishReason); reason {
	case "SAFETY", "RECITATION", "BLOCKLIST", "PROHIBITED_CONTENT":
		return "", &BlockedError{Reason: reason}
	}

	var sb strings.Builder
	if c.Content != nil {
		for _, p := range c.Content.Parts {
			if p != nil && !p.Thought {
				sb.WriteString(p.Text)
			}
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: empty candidate (finish reason %q)", ports.ErrMalformedResponse, c.FinishReason)
	}
	return sb.String(), nil
}

// APIError is a non-200 reply from the API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini API error (HTTP %d, %s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// Retryable reports whether the request may succeed if sent again.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// BlockedError reports a prompt or candidate rejected by safety filters.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return "gemini blocked the content: " + e.Reason
}

// translateError maps SDK errors onto APIError. Other errors are wrapped.
func translateError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{StatusCode: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &APIError{StatusCode: apiErrPtr.Code, Status: apiErrPtr.Status, Message: apiErrPtr.Message}
	}
	return fmt.Errorf("gemini request failed: %w", err)
}
