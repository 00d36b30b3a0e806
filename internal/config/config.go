// README: Config loader with env defaults for HTTP, model providers, Maps, and Redis.
package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AIConfig struct {
	Provider    string
	GeminiKey   string
	GeminiModel string
	OpenAIKey   string
	OpenAIModel string
	Temperature float32
	Timeout     time.Duration
}

// APIKey returns the credential of the selected provider.
func (c AIConfig) APIKey() string {
	if c.Provider == "openai" {
		return c.OpenAIKey
	}
	return c.GeminiKey
}

// Model returns the model name of the selected provider.
func (c AIConfig) Model() string {
	if c.Provider == "openai" {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

type Config struct {
	HTTP struct {
		Addr           string
		AllowedOrigins []string
	}
	Redis struct {
		Addr string
	}
	Maps struct {
		APIKey  string
		Timeout time.Duration
	}
	AI AIConfig
}

// Load reads the process environment, after merging a .env file from the
// working directory when one exists. Missing credentials are not an error here;
// the services that need them report it.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: .env not loaded: %v", err)
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("VOYAGE_HTTP_ADDR", ":8080")
	cfg.HTTP.AllowedOrigins = envList("VOYAGE_ALLOWED_ORIGINS")
	cfg.Redis.Addr = os.Getenv("VOYAGE_REDIS_ADDR")
	cfg.Maps.APIKey = os.Getenv("MAPS_API_KEY")
	cfg.Maps.Timeout = time.Duration(envOrDefaultInt("VOYAGE_MAPS_TIMEOUT_SECONDS", 5)) * time.Second

	cfg.AI.Provider = strings.ToLower(envOrDefault("VOYAGE_AI_PROVIDER", "gemini"))
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.GeminiModel = os.Getenv("VOYAGE_GEMINI_MODEL")
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.OpenAIModel = os.Getenv("VOYAGE_OPENAI_MODEL")
	cfg.AI.Temperature = float32(envOrDefaultFloat("VOYAGE_AI_TEMPERATURE", 0.7))
	cfg.AI.Timeout = time.Duration(envOrDefaultInt("VOYAGE_AI_TIMEOUT_SECONDS", 90)) * time.Second

	switch cfg.AI.Provider {
	case "gemini", "openai":
	default:
		return cfg, errors.New("VOYAGE_AI_PROVIDER must be gemini or openai, got " + cfg.AI.Provider)
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
