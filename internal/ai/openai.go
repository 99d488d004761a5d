package ai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/healpraybackend/internal/models"
)

const openAIModel = openai.GPT4

// OpenAIGenerator is the primary text-generation provider.
type OpenAIGenerator struct {
	client            *openai.Client
	systemInstruction string
}

func NewOpenAIGenerator(apiKey, systemInstruction string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:            openai.NewClient(apiKey),
		systemInstruction: systemInstruction,
	}
}

func (g *OpenAIGenerator) Name() string {
	return "openai"
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (*models.AIResult, error) {
	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openAIModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: g.systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:        500,
		Temperature:      0.7,
		TopP:             0.9,
		FrequencyPenalty: 0.3,
		PresencePenalty:  0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("openai completion failed: %v", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("no content generated from openai")
	}

	return &models.AIResult{
		Content:        resp.Choices[0].Message.Content,
		Model:          openAIModel,
		TokensUsed:     resp.Usage.TotalTokens,
		GenerationTime: time.Since(start),
	}, nil
}
