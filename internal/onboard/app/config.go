package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/fmalaspina/vallebot/pkg/httpx"
)

type Config struct {
	Env                 string        `env:"ENV"                   envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	DatabaseFile string `env:"DATABASE_FILE" envDefault:"vallebot.db"`

	// AdminToken guards the operator endpoints; empty disables them.
	AdminToken string `env:"ADMIN_TOKEN"`
	// VerifyToken answers the messaging provider's subscription handshake.
	VerifyToken string `env:"WA_VERIFY_TOKEN"`

	EmbeddingProvider string        `env:"EMBEDDING_PROVIDER" envDefault:"ollama"`
	EmbeddingModel    string        `env:"EMBEDDING_MODEL"`
	EmbeddingDim      int           `env:"EMBEDDING_DIM"      envDefault:"768"`
	EmbeddingTimeout  time.Duration `env:"EMBEDDING_TIMEOUT"  envDefault:"30s"`

	LLMProvider string        `env:"LLM_PROVIDER" envDefault:"ollama"`
	LLMModel    string        `env:"LLM_MODEL"`
	LLMTimeout  time.Duration `env:"LLM_TIMEOUT"  envDefault:"60s"`

	OllamaURL   string `env:"OLLAMA_URL"    envDefault:"http://localhost:11434"`
	GenAIAPIKey string `env:"GENAI_API_KEY"`

	RetryAttempts int `env:"RETRY_ATTEMPTS" envDefault:"3"`
	MergeRetries  int `env:"MERGE_RETRIES"  envDefault:"5"`
	RecentLimit   int `env:"RECENT_LIMIT"   envDefault:"5"`

	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	// MessageRetention bounds the message log; 0 keeps every message.
	MessageRetention     time.Duration `env:"MESSAGE_RETENTION"     envDefault:"2160h"`

	WebhookLimit httpx.RateLimitConfig `envPrefix:"RATELIMIT_WEBHOOK_"`
	AdminLimit   httpx.RateLimitConfig `envPrefix:"RATELIMIT_ADMIN_"`
	ProbeLimit   httpx.RateLimitConfig `envPrefix:"RATELIMIT_PROBE_"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadConfig reads Config from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("DATABASE_FILE is required"))
	}
	if c.EmbeddingDim <= 0 {
		errs = append(errs, fmt.Errorf("EMBEDDING_DIM must be positive, got %d", c.EmbeddingDim))
	}
	if c.RetryAttempts <= 0 {
		errs = append(errs, fmt.Errorf("RETRY_ATTEMPTS must be positive, got %d", c.RetryAttempts))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	uses := func(p string) bool { return p == "genai" }
	if (uses(c.EmbeddingProvider) || uses(c.LLMProvider)) && c.GenAIAPIKey == "" {
		errs = append(errs, errors.New("GENAI_API_KEY is required for the genai provider"))
	}
	return errors.Join(errs...)
}
