package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/daybook-api/internal/constants"
)

type AIService struct {
	client *openai.Client
}

// NewAIService returns nil when no API key is configured.
func NewAIService(apiKey string) *AIService {
	if apiKey == "" {
		return nil
	}
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestTags asks the model for short tags describing a todo. Known tags of
// the user are offered so the model can reuse them.
func (s *AIService) SuggestTags(ctx context.Context, title, description string, vocabulary []string) ([]string, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	known := "(none)"
	if len(vocabulary) > 0 {
		known = strings.Join(vocabulary, ", ")
	}

	prompt := fmt.Sprintf(`You label personal todo items with short tags.

Title: %s
Description: %s

Tags the user already uses: %s

Return a JSON array of at most %d lowercase tags (one or two words each), preferring the user's existing tags when they fit.
Return only the JSON array, for example ["work", "finance"].`, title, description, known, constants.MaxTagSuggestions)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var tags []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &tags); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tags, nil
}
