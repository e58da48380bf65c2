package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/tieubaoca/studymate-be/config"
)

const answerSystemPrompt = "You are a helpful study assistant. " +
	"Answer using ONLY the provided context. " +
	"If the answer is not in the context, say you cannot find it."

const answerUserPromptFormat = "Context from uploaded documents:\n%s\n\n" +
	"Student's Question: %s\n\n" +
	"Answer concisely and cite sources by filename when relevant."

// completionAPI is the slice of the OpenAI client the synthesizer uses.
// *openai.Client satisfies it.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIService answers questions through a chat completion endpoint,
// either Azure OpenAI or any OpenAI-compatible server.
type OpenAIService struct {
	client          completionAPI
	model           string
	maxAnswerTokens int
}

// NewOpenAIService validates the service configuration and builds the
// client. Missing endpoint, key or deployment is a fatal configuration
// error caught here, before any network call is attempted.
func NewOpenAIService(cfg config.AIConfig) (*OpenAIService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing AI service API key")
	}
	if cfg.Deployment == "" {
		return nil, errors.New("missing AI model deployment name")
	}
	if cfg.MaxAnswerTokens <= 0 {
		return nil, fmt.Errorf("max answer tokens must be positive, got %d", cfg.MaxAnswerTokens)
	}

	var clientConfig openai.ClientConfig
	switch {
	case cfg.AzureEndpoint != "":
		clientConfig = openai.DefaultAzureConfig(cfg.APIKey, cfg.AzureEndpoint)
		if cfg.AzureAPIVersion != "" {
			clientConfig.APIVersion = cfg.AzureAPIVersion
		}
	case cfg.BaseURL != "":
		clientConfig = openai.DefaultConfig(cfg.APIKey)
		clientConfig.BaseURL = cfg.BaseURL
	default:
		return nil, errors.New("missing AI service endpoint: set ai.azure_endpoint or ai.base_url")
	}

	return &OpenAIService{
		client:          openai.NewClientWithConfig(clientConfig),
		model:           cfg.Deployment,
		maxAnswerTokens: cfg.MaxAnswerTokens,
	}, nil
}

// Answer sends the grounding context and question as a two-message prompt
// and returns the first choice's content.
//
// A response with no choices or empty content yields "" with a nil error: a
// degraded model reply becomes a visible empty answer upstream instead of a
// failure. Transport errors propagate unretried.
func (s *OpenAIService) Answer(ctx context.Context, question, contextText string) (string, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: answerSystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf(answerUserPromptFormat, contextText, question),
				},
			},
			MaxTokens: s.maxAnswerTokens,
		},
	)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
