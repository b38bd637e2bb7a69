package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию движка Oraculus.
type Config struct {
	// Настройки логирования
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"console"`

	// Настройки HTTP сервера (cmd/server)
	Port string `envconfig:"ORACULUS_SERVER_PORT" default:"8080"`

	// Файлы персистентности
	ChoiceCachePath string `envconfig:"CHOICE_CACHE_PATH" default:"choice_cache.json"`
	FeedbackPath    string `envconfig:"FEEDBACK_PATH" default:"feedback.json"`

	// Настройки Redis (опциональный бэкенд кэша выборов).
	// Пустой адрес означает файловый кэш.
	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Настройки AI (OpenAI-совместимый API или Ollama)
	AIClientType    string        `envconfig:"AI_CLIENT_TYPE" default:"openai"`
	AIBaseURL       string        `envconfig:"AI_BASE_URL" default:"https://openrouter.ai/api/v1"`
	AIModel         string        `envconfig:"AI_MODEL" default:"deepseek/deepseek-chat"`
	AITimeout       time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	AIMaxContextTok int           `envconfig:"AI_MAX_CONTEXT_TOKENS" default:"3000"`
	AIAPIKey        string        `envconfig:"AI_API_KEY" default:""`

	// Пороги политики расширения дерева
	ExpansionMinCount int     `envconfig:"EXPANSION_MIN_COUNT" default:"3"`
	ExpansionMinAvg   float64 `envconfig:"EXPANSION_MIN_AVG_RATING" default:"3.5"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Логируем загруженную конфигурацию (кроме ключа API)
	log.Printf("Конфигурация загружена:")
	log.Printf("  Log Level: %s", cfg.LogLevel)
	log.Printf("  Choice Cache Path: %s", cfg.ChoiceCachePath)
	log.Printf("  Feedback Path: %s", cfg.FeedbackPath)
	if cfg.RedisAddr != "" {
		log.Printf("  Redis Addr: %s (db %d)", cfg.RedisAddr, cfg.RedisDB)
	} else {
		log.Printf("  Redis: не настроен, используется файловый кэш")
	}
	log.Printf("  AI Client Type: %s", cfg.AIClientType)
	log.Printf("  AI Base URL: %s", cfg.AIBaseURL)
	log.Printf("  AI Model: %s", cfg.AIModel)
	log.Printf("  AI Timeout: %v", cfg.AITimeout)
	if cfg.AIAPIKey != "" {
		log.Println("  AI API Key: [ЗАГРУЖЕН]")
	} else {
		log.Println("  AI API Key: отсутствует, генерация будет недоступна")
	}
	log.Printf("  Expansion Gate: count>=%d, avg>=%.1f", cfg.ExpansionMinCount, cfg.ExpansionMinAvg)

	return &cfg, nil
}
