package config

import (
	"log"
	"os"

	"github.com/verity-app/verity-backend/src/api/components/llm"
)

type Config struct {
	MySQLDSN   string
	RedisURL   string
	JWTSecret  string
	Port       string
	GNewsKey   string
	LLMKey     string
	LLMBaseURL string
	LLMModel   string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

// Load reads configuration from the environment. GNEWS_API_KEY and
// LLM_API_KEY may be empty: the verification pipeline then runs in its
// documented fallback modes instead of failing at startup.
func Load() Config {
	return Config{
		MySQLDSN:   getenv("MYSQL_DSN", "verity:verity@tcp(localhost:3306)/verity?parseTime=true"),
		RedisURL:   getenv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:  getenv("JWT_SECRET", "fallbacksecret"),
		Port:       getenv("PORT", "8000"),
		GNewsKey:   os.Getenv("GNEWS_API_KEY"),
		LLMKey:     os.Getenv("LLM_API_KEY"),
		LLMBaseURL: getenv("LLM_API_BASE", llm.DefaultBaseURL),
		LLMModel:   getenv("LLM_MODEL", llm.DefaultModel),
	}
}
