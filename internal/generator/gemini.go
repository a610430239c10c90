package generator

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sunseo/internal/logger"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiConfig selects the model used for generation.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

// GeminiSource creates Gemini clients when generation is requested.
type GeminiSource struct {
	config GeminiConfig
}

// NewGeminiSource returns a Source backed by the Gemini API.
func NewGeminiSource(config GeminiConfig) *GeminiSource {
	return &GeminiSource{config: config}
}

// Acquire connects to Gemini. The returned generator must be closed by the
// caller when it implements io.Closer.
func (s *GeminiSource) Acquire(ctx context.Context) (TextGenerator, error) {
	if s.config.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is required", ErrUnavailable)
	}

	logger.Info("Initializing Gemini generator")
	logger.Debug("API key length", "length", len(s.config.APIKey))

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.config.APIKey))
	if err != nil {
		logger.Error("Failed to create Gemini client", "error", err)
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrUnavailable, err)
	}

	model := client.GenerativeModel(s.config.Model)
	model.SetTemperature(s.config.Temperature)

	logger.Info("Gemini generator initialized", "model", s.config.Model, "temperature", s.config.Temperature)

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// Gemini generates text with a Gemini model.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// Close cleans up the client resources
func (g *Gemini) Close() error {
	if g.client != nil {
		logger.Debug("Closing Gemini client")
		return g.client.Close()
	}
	return nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string, maxLength int) (string, error) {
	if maxLength > 0 {
		g.model.SetMaxOutputTokens(int32(maxLength))
	}

	logger.Debug("Sending request to Gemini API", "prompt", prompt, "max_length", maxLength)
	start := time.Now()

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		logger.Error("Gemini API request failed", "error", err, "duration", time.Since(start))
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	logger.Debug("Received response from Gemini API", "duration", time.Since(start), "length", len(text))
	return text, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response generated from AI")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no response generated from AI")
	}

	var b strings.Builder
	for i, part := range candidate.Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			b.WriteString(string(textPart))
		} else {
			logger.Warn("Non-text part in response", "index", i, "type", fmt.Sprintf("%T", part))
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("empty response from AI")
	}
	return text, nil
}

// APIKeyFromEnv reads the API key from the named environment variable.
func APIKeyFromEnv(name string) string {
	apiKey := os.Getenv(name)
	if apiKey == "" {
		logger.Warn("API key environment variable not set", "name", name)
	} else {
		logger.Debug("API key found", "name", name, "length", len(apiKey))
	}
	return apiKey
}
