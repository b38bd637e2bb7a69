package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"oraculus/internal/cache"
	"oraculus/internal/config"
	"oraculus/internal/feedback"
	"oraculus/internal/game"
	"oraculus/internal/generation"
	"oraculus/internal/logger"
	"oraculus/internal/tree"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	log.Println("Запуск Oraculus (терминальная сессия)...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Терминальная сессия пишет историю в stdout; логи уходят в файл,
	// чтобы не мешать игроку.
	logPath := os.Getenv("ORACULUS_GAME_LOG")
	if logPath == "" {
		logPath = "oraculus_game.log"
	}
	zapLogger, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Encoding:   cfg.LogEncoding,
		OutputPath: logPath,
	})
	if err != nil {
		log.Fatalf("Не удалось инициализировать логгер: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	choiceCache := buildChoiceCache(ctx, cfg, zapLogger)
	feedbackStore := feedback.NewFileStore(cfg.FeedbackPath, zapLogger)

	gen, err := generation.NewGenerator(cfg, zapLogger)
	if err != nil {
		zapLogger.Warn("Генерация недоступна, используются статические варианты", zap.Error(err))
		gen = nil
	}

	storyTree, err := tree.New(tree.SeedNodes(), tree.Options{
		Cache:            choiceCache,
		Feedback:         feedbackStore,
		Generator:        gen,
		MinFeedbackCount: cfg.ExpansionMinCount,
		MinAvgRating:     cfg.ExpansionMinAvg,
		Logger:           zapLogger,
	})
	if err != nil {
		zapLogger.Fatal("Не удалось построить дерево истории", zap.Error(err))
	}

	session := game.NewSession(storyTree, feedbackStore, os.Stdin, os.Stdout, zapLogger)
	if err := session.Run(ctx); err != nil {
		zapLogger.Error("Сессия завершилась с ошибкой", zap.Error(err))
		os.Exit(1)
	}
}

// buildChoiceCache выбирает бэкенд кэша: Redis, если настроен адрес,
// иначе файловый кэш. При недоступном Redis падаем обратно на файл.
func buildChoiceCache(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) cache.ChoiceCache {
	if cfg.RedisAddr == "" {
		return cache.NewFileCache(cfg.ChoiceCachePath, zapLogger)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	redisCache, err := cache.NewRedisCache(ctx, client, zapLogger)
	if err != nil {
		zapLogger.Warn("Redis недоступен, используется файловый кэш", zap.Error(err))
		return cache.NewFileCache(cfg.ChoiceCachePath, zapLogger)
	}
	return redisCache
}
