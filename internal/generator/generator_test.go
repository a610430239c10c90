package generator

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoneIsUnavailable(t *testing.T) {
	gen, err := None{}.Acquire(context.Background())
	assert.Nil(t, gen)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestStaticSource(t *testing.T) {
	fn := Func(func(_ context.Context, prompt string, maxLength int) (string, error) {
		return prompt + "!", nil
	})

	gen, err := Static{Generator: fn}.Acquire(context.Background())
	require.NoError(t, err)
	out, err := gen.Generate(context.Background(), "hi", 10)
	require.NoError(t, err)
	assert.Equal(t, "hi!", out)

	_, err = Static{}.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGeminiSourceRequiresAPIKey(t *testing.T) {
	_, err := NewGeminiSource(GeminiConfig{Model: "gemini-2.0-flash"}).Acquire(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("  Солнцезащитные очки "),
				genai.Text("Гуччи  "),
			}},
		}},
	}

	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "Солнцезащитные очки Гуччи", text)
}

func TestResponseTextEmpty(t *testing.T) {
	_, err := responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	})
	assert.Error(t, err)

	_, err = responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text("   ")}}}},
	})
	assert.Error(t, err)
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("SUNSEO_TEST_KEY", "secret")
	assert.Equal(t, "secret", APIKeyFromEnv("SUNSEO_TEST_KEY"))
	assert.Equal(t, "", APIKeyFromEnv("SUNSEO_TEST_KEY_UNSET"))
}
