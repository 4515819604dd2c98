package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"capbot/internal/llm"
	"capbot/internal/payroll"
	"capbot/internal/shared/connection"
	"capbot/internal/shared/env"
	"capbot/internal/websearch"
)

// Config collects everything BuildApp reads from the environment.
type Config struct {
	DataPath         string
	RedisAddr        string
	GroqAPIKey       string
	OpenAIAPIKey     string
	OpenAIModel      string
	LLMTimeout       time.Duration
	WebSearchEnabled bool
	WebSearchTimeout time.Duration
	RateLimitRPS     int
	RateLimitBurst   int
}

func LoadConfig() Config {
	return Config{
		DataPath:         env.GetString("PAYROLL_DATA_PATH", "data/payroll.csv"),
		RedisAddr:        env.GetString("REDIS_ADDR", ""),
		GroqAPIKey:       env.GetString("GROQ_API_KEY", ""),
		OpenAIAPIKey:     env.GetString("OPENAI_API_KEY", ""),
		OpenAIModel:      env.GetString("OPENAI_MODEL", ""),
		LLMTimeout:       env.GetDuration("LLM_TIMEOUT", 30*time.Second),
		WebSearchEnabled: env.GetBool("WEB_SEARCH_ENABLED", true),
		WebSearchTimeout: env.GetDuration("WEB_SEARCH_TIMEOUT", 10*time.Second),
		RateLimitRPS:     env.GetInt("RATE_LIMIT_RPS", 10),
		RateLimitBurst:   env.GetInt("RATE_LIMIT_BURST", 20),
	}
}

// BuildApp loads the payroll dataset, wires every module and registers the
// routes. The dataset is the only hard dependency, everything else
// degrades: no redis means no response cache, no API key means the demo
// composer answers.
func BuildApp(router *gin.Engine, cfg Config) error {
	store, err := payroll.NewStoreFromFile(cfg.DataPath)
	if err != nil {
		return err
	}
	zap.L().Info("payroll dataset loaded",
		zap.String("path", cfg.DataPath),
		zap.Int("records", store.Len()),
	)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, 3)
		if err != nil {
			zap.L().Warn("redis unavailable, response cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	generator := llm.NewService(llm.Config{
		GroqAPIKey:   cfg.GroqAPIKey,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OpenAIModel:  cfg.OpenAIModel,
		Timeout:      cfg.LLMTimeout,
	})
	if generator.Offline() {
		zap.L().Warn("no LLM credential configured, running in demo mode")
	}

	var searcher websearch.Searcher
	if cfg.WebSearchEnabled {
		searcher = websearch.NewService(cfg.WebSearchTimeout)
	}

	return registerModules(router, cfg, store, generator, searcher, rdb)
}
