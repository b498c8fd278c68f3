package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultTextModel = "gemini-1.5-flash"

// TextClient generates text through the Gemini API, rotating across the
// configured key pool.
type TextClient struct {
	pool  *KeyPool
	model string
}

func NewTextClient(keys []string, model string) *TextClient {
	if model == "" {
		model = defaultTextModel
	}
	return &TextClient{
		pool:  NewKeyPool(keys),
		model: model,
	}
}

// Generate sends the prompt and returns the response text plus the number of
// attempts made across the key pool.
func (c *TextClient) Generate(ctx context.Context, prompt string) (string, int, error) {
	var out string
	attempts, err := c.pool.Do(ctx, func(ctx context.Context, key string) error {
		client, err := genai.NewClient(ctx, option.WithAPIKey(key))
		if err != nil {
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		defer client.Close()

		model := client.GenerativeModel(c.model)
		res, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return normalizeGeminiError(err)
		}

		text, err := responseText(res)
		if err != nil {
			return err
		}
		out = text
		return nil
	}, RetryableStatus)
	return out, attempts, err
}

// normalizeGeminiError maps googleapi errors onto ProviderError so the
// shared retry predicate applies.
func normalizeGeminiError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &ProviderError{StatusCode: gerr.Code, Body: gerr.Message}
	}
	return err
}

func responseText(res *genai.GenerateContentResponse) (string, error) {
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", errors.New("empty response from model")
	}
	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no text parts in model response")
	}
	return sb.String(), nil
}
