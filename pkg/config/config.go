package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	// Эндпоинт эмбеддингов (OpenAI-совместимый). Пустой ключ — валидная
	// конфигурация: цепочка схожести начнёт сразу с лексического яруса.
	EmbeddingsAPIKey  string
	EmbeddingsBaseURL string
	EmbeddingsModel   string

	// ScorePolicy — имя пресета взвешивания: balanced или semantic.
	ScorePolicy      string
	RecomputeWorkers int

	LogJSON  bool
	LogDebug bool
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		EmbeddingsAPIKey:  os.Getenv("EMBEDDINGS_API_KEY"),
		EmbeddingsBaseURL: os.Getenv("EMBEDDINGS_BASE_URL"),
		EmbeddingsModel:   getEnv("EMBEDDINGS_MODEL", "text-embedding-3-small"),
		ScorePolicy:       getEnv("SCORE_POLICY", "balanced"),
		RecomputeWorkers:  getEnvInt("RECOMPUTE_WORKERS", 4),
		LogJSON:           getEnvBool("LOG_JSON", false),
		LogDebug:          getEnvBool("LOG_DEBUG", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
