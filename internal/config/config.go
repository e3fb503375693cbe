// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/aristath/covercall/internal/modules/strikes"
	"github.com/aristath/covercall/internal/utils"
)

// Config holds application configuration
type Config struct {
	Port      int
	LogLevel  string
	LogPretty bool
	DevMode   bool
	Strikes   strikes.Config // engine calibration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	engineCfg := strikes.DefaultConfig()
	engineCfg.DefaultTargetProbability = getEnvAsFloat("DEFAULT_TARGET_PROBABILITY", engineCfg.DefaultTargetProbability)
	engineCfg.RiskFreeRate = getEnvAsFloat("RISK_FREE_RATE", engineCfg.RiskFreeRate)
	engineCfg.VolatilityWarningLevel = getEnvAsFloat("VOLATILITY_WARNING_LEVEL", engineCfg.VolatilityWarningLevel)
	engineCfg.MaxParallelHorizons = getEnvAsInt("MAX_PARALLEL_HORIZONS", engineCfg.MaxParallelHorizons)
	engineCfg.DefaultTradesPerYear = getEnvAsInt("DEFAULT_TRADES_PER_YEAR", engineCfg.DefaultTradesPerYear)

	if raw := getEnv("DEFAULT_HORIZONS", ""); raw != "" {
		horizons, err := utils.ParseIntCSV(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DEFAULT_HORIZONS: %w", err)
		}
		engineCfg.DefaultHorizons = horizons
	}

	cfg := &Config{
		Port:      getEnvAsInt("PORT", 8080),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
		DevMode:   getEnvAsBool("DEV_MODE", false),
		Strikes:   engineCfg,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be in 1..65535, got %d", c.Port)
	}
	if err := c.Strikes.Validate(); err != nil {
		return fmt.Errorf("invalid engine configuration: %w", err)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
