package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	LLMTimeout    time.Duration

	SessionStore string
	RedisURL     string
	SessionTTL   time.Duration

	AdminToken  string
	CORSOrigins []string

	Events EventConfig
}

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// LoadConfig reads an optional .env file and then the process environment.
// A missing .env is not an error; neither is a missing API key.
func LoadConfig(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-5.2"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		LLMTimeout:    time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second,

		SessionStore: strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		SessionTTL:   time.Duration(getEnvInt("SESSION_TTL_MINUTES", 120)) * time.Minute,

		AdminToken:  os.Getenv("ADMIN_TOKEN"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		Events: EventConfig{
			Enabled:          getEnvBool("EVENTS_ENABLED", false),
			Publisher:        getEnv("EVENTS_PUBLISHER", "mock"),
			KafkaBrokers:     getEnv("KAFKA_BROKERS", "localhost:9092"),
			ProgressionTopic: getEnv("PROGRESSION_TOPIC", "llm-dissector.progression"),
			ConsumerGroup:    getEnv("KAFKA_CONSUMER_GROUP", "llm-dissector-progress-tail"),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
