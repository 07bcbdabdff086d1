package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath      string   `env:"DB_PATH" envDefault:"rps.db"`
	ServerPort  string   `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// RNGSeed pins the opponent's randomness; 0 seeds from crypto/rand.
	RNGSeed uint64 `env:"RNG_SEED" envDefault:"0"`

	RoundRetention time.Duration `env:"ROUND_RETENTION" envDefault:"720h"`
	PruneSchedule  string        `env:"PRUNE_SCHEDULE" envDefault:"@daily"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}
	return parse(logger, env.Options{})
}

func parse(logger zerolog.Logger, opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	if cfg.RoundRetention <= 0 {
		return nil, fmt.Errorf("ROUND_RETENTION must be positive, got %s", cfg.RoundRetention)
	}
	if cfg.PruneSchedule == "" {
		return nil, fmt.Errorf("PRUNE_SCHEDULE is required")
	}
	zerolog.SetGlobalLevel(level)

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Strs("cors_origins", cfg.CORSOrigins).
		Bool("seeded_rng", cfg.RNGSeed != 0).
		Dur("round_retention", cfg.RoundRetention).
		Str("prune_schedule", cfg.PruneSchedule).
		Msg("configuration loaded")

	return cfg, nil
}

var Module = fx.Provide(Load)
