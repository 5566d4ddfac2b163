package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/placementflow/placementflow-backend/internal/logger"
)

// Quota policy selection for the generation gates.
const (
	QuotaPolicyCounting = "counting"
	QuotaPolicyBalance  = "balance"
)

type Config struct {
	Port    string
	LogMode string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAITimeout time.Duration

	QuotaPolicy           string
	AnswerDailyLimit      int
	CoverLetterDailyLimit int
}

func Load(log *logger.Logger) Config {
	cfg := Config{
		Port:    getEnv(log, "PORT", "8080"),
		LogMode: getEnv(log, "LOG_MODE", "development"),

		DBHost:     getEnv(log, "POSTGRES_HOST", "localhost"),
		DBPort:     getEnv(log, "POSTGRES_PORT", "5432"),
		DBUser:     getEnv(log, "POSTGRES_USER", "postgres"),
		DBPassword: getEnv(log, "POSTGRES_PASSWORD", ""),
		DBName:     getEnv(log, "POSTGRES_NAME", "placementflow"),

		JWTSecretKey:   getEnv(log, "JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: time.Duration(getEnvAsInt(log, "ACCESS_TOKEN_TTL", 3600)) * time.Second,

		OpenAIAPIKey:  getEnv(log, "OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv(log, "OPENAI_MODEL", "gpt-5"),
		OpenAITimeout: time.Duration(getEnvAsInt(log, "OPENAI_TIMEOUT_SECONDS", 90)) * time.Second,

		QuotaPolicy:           strings.ToLower(getEnv(log, "QUOTA_POLICY", QuotaPolicyCounting)),
		AnswerDailyLimit:      getEnvAsInt(log, "ANSWER_DAILY_LIMIT", 20),
		CoverLetterDailyLimit: getEnvAsInt(log, "COVER_LETTER_DAILY_LIMIT", 15),
	}
	if cfg.QuotaPolicy != QuotaPolicyCounting && cfg.QuotaPolicy != QuotaPolicyBalance {
		log.Warn("Unknown QUOTA_POLICY, falling back to counting", "value", cfg.QuotaPolicy)
		cfg.QuotaPolicy = QuotaPolicyCounting
	}
	return cfg
}

func getEnv(log *logger.Logger, name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		log.Debug("Env var missing, using default", "name", name)
		return def
	}
	return v
}

func getEnvAsInt(log *logger.Logger, name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Warn("Env var is not an integer, using default", "name", name, "value", v)
		return def
	}
	return i
}
