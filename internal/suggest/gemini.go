package suggest

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/agentstation/setlist/pkg/constants"
	"github.com/agentstation/setlist/pkg/errors"
)

const serviceName = "gemini"

// GeminiConfig configures the Gemini generator.
type GeminiConfig struct {
	APIKey string
	Model  string

	// BaseURL and HTTPClient override the API endpoint, for tests.
	BaseURL    string
	HTTPClient *http.Client
}

// Gemini generates text with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator. An API key is required.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigError(serviceName, "GEMINI_API_KEY must be set", errors.ErrAPIKeyRequired)
	}
	if cfg.Model == "" {
		cfg.Model = constants.DefaultGeminiModel
	}

	config := &genai.ClientConfig{
		Backend:    genai.BackendGeminiAPI,
		APIKey:     cfg.APIKey,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, errors.NewConfigError(serviceName, "creating client", err)
	}
	return &Gemini{client: client, model: cfg.Model}, nil
}

// Generate implements Generator.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", classify(err)
	}
	return resp.Text(), nil
}

// classify maps Gemini failures onto the setlist error types.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.NewConfigError(serviceName, apiErr.Message, errors.ErrAPIKeyInvalid)
		case http.StatusBadRequest:
			if strings.Contains(strings.ToLower(apiErr.Message), "api key") {
				return errors.NewConfigError(serviceName, apiErr.Message, errors.ErrAPIKeyInvalid)
			}
		}
		wrapped := errors.NewAPIError(serviceName, apiErr.Code, apiErr.Message)
		wrapped.Err = err
		return wrapped
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota"), strings.Contains(msg, "rate limit"), strings.Contains(msg, "too many requests"):
		return &errors.APIError{Service: serviceName, StatusCode: http.StatusTooManyRequests, Message: err.Error(), Err: err}
	case strings.Contains(msg, "api key"), strings.Contains(msg, "authentication"):
		return errors.NewConfigError(serviceName, err.Error(), errors.ErrAPIKeyInvalid)
	}
	return errors.WrapAPI(serviceName, 0, err)
}
