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

type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Screening ScreeningConfig
	Upload    UploadConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowOrigins   string
	RequestTimeout time.Duration
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

type ScreeningConfig struct {
	DefaultStrictness string
	SalaryMarket      string
	BatchConcurrency  int
}

type UploadConfig struct {
	MaxFileSize int64
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

// ErrMissingAPIKey is returned by Validate when no LLM credential is configured.
var ErrMissingAPIKey = errors.New("GOOGLE_API_KEY environment variable not set")

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	env := getEnv("ENV", "development")

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "5000"),
			Env:            env,
			AllowOrigins:   getEnv("CORS_ALLOW_ORIGINS", "*"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", "120s"),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GOOGLE_API_KEY", getEnv("GEMINI_API_KEY", "")),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature: float32(getEnvAsFloat("GEMINI_TEMPERATURE", 0.0)),
		},
		Screening: ScreeningConfig{
			DefaultStrictness: getEnv("DEFAULT_STRICTNESS", "medium"),
			SalaryMarket:      getEnv("SALARY_MARKET", "India"),
			BatchConcurrency:  getEnvAsInt("BATCH_CONCURRENCY", 3),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: env == "development",
		},
	}
}

// Validate reports configuration that makes the LLM-backed pipelines unusable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
