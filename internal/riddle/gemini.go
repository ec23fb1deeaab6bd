// internal/riddle/gemini.go
//
// Gemini-backed clue generation through Vertex AI.

package riddle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/noam-r/magic-four-squared/internal/words"
)

const (
	defaultRegion = "europe-west1"
	defaultModel  = "gemini-2.5-flash"
)

const riddlePromptEN = `Write a one-sentence riddle whose answer is the %d-letter word "%s".
The riddle must not contain the answer itself or spell out its letters.
Answer UNIQUELY with JSON, no commentary and no markdown:
{"riddle": "<riddle text>"}`

const riddlePromptHE = `כתוב חידה בת משפט אחד בעברית שפתרונה הוא המילה "%s" (%d אותיות).
אסור שהחידה תכיל את המילה עצמה או תאיית את אותיותיה.
השב אך ורק ב-JSON, ללא הערות וללא markdown:
{"riddle": "<נוסח החידה>"}`

// GeminiProvider generates riddles with Gemini Flash.
type GeminiProvider struct {
	client    *genai.Client
	modelName string
}

// NewGeminiProvider creates a provider using Application Default
// Credentials. Set GOOGLE_APPLICATION_CREDENTIALS to the service account
// key file path.
func NewGeminiProvider(ctx context.Context, projectID, region string) (*GeminiProvider, error) {
	if region == "" {
		region = defaultRegion
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiProvider{
		client:    client,
		modelName: defaultModel,
	}, nil
}

func (g *GeminiProvider) Name() string { return SourceGemini }

// Riddle asks the model for one clue and parses the JSON envelope.
func (g *GeminiProvider) Riddle(ctx context.Context, lang words.Language, word string) (string, error) {
	prompt := fmt.Sprintf(riddlePromptEN, words.Length(word), word)
	if lang == words.Hebrew {
		prompt = fmt.Sprintf(riddlePromptHE, word, words.Length(word))
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.4)),
			TopP:             genai.Ptr(float32(1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty gemini response")
	}

	var payload struct {
		Riddle string `json:"riddle"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return "", fmt.Errorf("parse riddle JSON: %w\nraw response: %s", err, text)
	}
	clue := strings.TrimSpace(payload.Riddle)
	if clue == "" {
		return "", fmt.Errorf("gemini returned no riddle text")
	}
	return clue, nil
}

// Close releases resources held by the client.
func (g *GeminiProvider) Close() error {
	return nil
}
