package generation

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"oraculus/internal/config"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// openAIClient реализует AIClient поверх go-openai (подходит для OpenAI,
// OpenRouter и любого совместимого API).
type openAIClient struct {
	client *openaigo.Client
	model  string
	logger *zap.Logger
}

var _ AIClient = (*openAIClient)(nil)

func newOpenAIClient(cfg *config.Config, logger *zap.Logger) *openAIClient {
	apiConfig := openaigo.DefaultConfig(cfg.AIAPIKey)
	apiConfig.BaseURL = cfg.AIBaseURL
	apiConfig.HTTPClient = &http.Client{Timeout: cfg.AITimeout}

	logger.Info("OpenAI клиент создан",
		zap.String("base_url", cfg.AIBaseURL),
		zap.String("model", cfg.AIModel),
		zap.Duration("timeout", cfg.AITimeout))

	return &openAIClient{
		client: openaigo.NewClientWithConfig(apiConfig),
		model:  cfg.AIModel,
		logger: logger.Named("OpenAIClient"),
	}
}

// GenerateText отправляет запрос chat completion и возвращает текст ответа.
func (c *openAIClient) GenerateText(ctx context.Context, systemPrompt string, userInput string, params Params) (string, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return "", fmt.Errorf("%w: системный промт пуст", ErrGenerationFailed)
	}

	messages := []openaigo.ChatCompletionMessage{
		{Role: openaigo.ChatMessageRoleSystem, Content: systemPrompt},
	}
	if userInput != "" {
		messages = append(messages, openaigo.ChatCompletionMessage{
			Role:    openaigo.ChatMessageRoleUser,
			Content: userInput,
		})
	}

	startTime := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: float32Val(params.Temperature),
		MaxTokens:   intVal(params.MaxTokens),
	})
	duration := time.Since(startTime)

	if err != nil {
		c.logger.Warn("Ошибка от AI API",
			zap.Duration("duration", duration), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.logger.Warn("AI API вернул пустой ответ", zap.Duration("duration", duration))
		return "", fmt.Errorf("%w: получен пустой ответ", ErrGenerationFailed)
	}

	c.logger.Debug("Ответ от AI API получен",
		zap.Duration("duration", duration),
		zap.Int("chars", len(resp.Choices[0].Message.Content)),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	return resp.Choices[0].Message.Content, nil
}

// float32Val конвертирует *float64 в float32 для API.
func float32Val(f64 *float64) float32 {
	if f64 == nil {
		return 1.0
	}
	return float32(*f64)
}

// intVal конвертирует *int в int; 0 означает "без лимита" для API.
func intVal(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
