package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	// Валидация хранилища
	switch c.DBDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			errors = append(errors, "database path is required for sqlite driver")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			errors = append(errors, "postgres dsn is required for postgres driver")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown db driver: %s", c.DBDriver))
	}

	// Валидация connection pooling
	if c.MaxOpenConns < 1 {
		errors = append(errors, "max open connections must be at least 1")
	}
	if c.MaxIdleConns < 1 {
		errors = append(errors, "max idle connections must be at least 1")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		errors = append(errors, "max idle connections cannot be greater than max open connections")
	}
	if c.ConnMaxLifetime < time.Second {
		errors = append(errors, "connection max lifetime must be at least 1 second")
	}

	// Валидация AI
	if c.AITimeout < time.Second {
		errors = append(errors, "ai timeout must be at least 1 second")
	}
	if c.AIRequestsPerMin < 1 {
		errors = append(errors, "ai requests per minute must be at least 1")
	}
	if c.AnthropicAPIKey != "" && c.AnthropicModel == "" {
		errors = append(errors, "anthropic model is required when api key is set")
	}

	// Валидация лимитов пайплайна
	if c.TopFrequent < 1 {
		errors = append(errors, "top frequent products must be at least 1")
	}
	if c.TopMissing < 1 {
		errors = append(errors, "top missing opportunities must be at least 1")
	}
	if c.TopRelated < 1 {
		errors = append(errors, "top related per seed must be at least 1")
	}
	if c.TopOpportunities < 1 {
		errors = append(errors, "top opportunities must be at least 1")
	}

	// Валидация весов скоринга
	if c.ScoreBaseWeight <= 0 {
		errors = append(errors, "score base weight must be positive")
	}
	if c.ScorePeerWeight <= 0 {
		errors = append(errors, "score peer weight must be positive")
	}
	if c.ScoreAffinityWeight <= 0 {
		errors = append(errors, "score affinity weight must be positive")
	}
	if c.ScorePeerCap < 1 {
		errors = append(errors, "score peer cap must be at least 1")
	}
	if c.ScoreAffinityCap < 1 {
		errors = append(errors, "score affinity cap must be at least 1")
	}

	// Валидация уровня логирования
	if c.LogLevel != "" {
		switch strings.ToUpper(c.LogLevel) {
		case "DEBUG", "INFO", "WARN", "ERROR":
		default:
			errors = append(errors, fmt.Sprintf("invalid log level: %s", c.LogLevel))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errors, "; "))
	}
	return nil
}
