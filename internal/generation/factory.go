package generation

import (
	"fmt"
	"strings"

	"oraculus/internal/config"

	"go.uber.org/zap"
)

// ErrNoCredentials indicates the configured backend requires an API key
// that was not provided. Callers treat this as a permanent (session
// lifetime) degraded mode, not a per-call retry condition.
var ErrNoCredentials = fmt.Errorf("AI API key is not configured")

// NewAIClient создает низкоуровневый AI клиент в зависимости от конфигурации.
func NewAIClient(cfg *config.Config, logger *zap.Logger) (AIClient, error) {
	switch strings.ToLower(cfg.AIClientType) {
	case "openai":
		if cfg.AIAPIKey == "" {
			return nil, ErrNoCredentials
		}
		return newOpenAIClient(cfg, logger), nil
	case "ollama":
		return newOllamaClient(cfg, logger)
	default:
		return nil, fmt.Errorf("неизвестный тип AI клиента: %q", cfg.AIClientType)
	}
}

// NewGenerator builds the narrative tree's Generation Port. When the
// backing client cannot be constructed (typically missing credentials) it
// returns (nil, err): a nil Generator is the explicit "unavailable" state
// and every call site degrades per its documented fallback.
func NewGenerator(cfg *config.Config, logger *zap.Logger) (Generator, error) {
	client, err := NewAIClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewService(client, cfg.AIModel, cfg.AIMaxContextTok, logger), nil
}
