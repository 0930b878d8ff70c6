package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Драйверы хранилища покупок
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config конфигурация сервера
type Config struct {
	// Сервер
	Port string `json:"port"`

	// Хранилище покупок
	DBDriver     string `json:"db_driver"` // sqlite | postgres
	DatabasePath string `json:"database_path"`
	PostgresDSN  string `json:"postgres_dsn"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// AI конфигурация (генерация отчетов)
	AnthropicAPIKey  string        `json:"anthropic_api_key"`
	AnthropicModel   string        `json:"anthropic_model"`
	AITimeout        time.Duration `json:"ai_timeout"`
	AIRequestsPerMin int           `json:"ai_requests_per_min"`

	// Справочник категорий продуктов (пустой путь = встроенный справочник)
	CategoryFilePath string `json:"category_file_path"`

	// Лимиты стадий пайплайна
	TopFrequent      int `json:"top_frequent"`
	TopMissing       int `json:"top_missing"`
	TopRelated       int `json:"top_related"`
	TopOpportunities int `json:"top_opportunities"`

	// Веса скоринга
	ScoreBaseWeight     float64 `json:"score_base_weight"`
	ScorePeerWeight     float64 `json:"score_peer_weight"`
	ScoreAffinityWeight float64 `json:"score_affinity_weight"`
	ScorePeerCap        int     `json:"score_peer_cap"`
	ScoreAffinityCap    int     `json:"score_affinity_cap"`

	// Логирование
	LogLevel string `json:"log_level"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	config := &Config{
		// Сервер
		Port: getEnv("SERVER_PORT", "9999"),

		// Хранилище
		DBDriver:     getEnv("DB_DRIVER", DriverSQLite),
		DatabasePath: getEnv("DATABASE_PATH", "purchases.db"),
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),

		// Connection pooling
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		// AI
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:   getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		AITimeout:        getEnvDuration("AI_TIMEOUT", 30*time.Second),
		AIRequestsPerMin: getEnvInt("AI_REQUESTS_PER_MIN", 20),

		// Справочник категорий
		CategoryFilePath: os.Getenv("CATEGORY_FILE_PATH"),

		// Лимиты пайплайна
		TopFrequent:      getEnvInt("TOP_FREQUENT_PRODUCTS", 5),
		TopMissing:       getEnvInt("TOP_MISSING_OPPORTUNITIES", 5),
		TopRelated:       getEnvInt("TOP_RELATED_PER_SEED", 3),
		TopOpportunities: getEnvInt("TOP_OPPORTUNITIES", 5),

		// Веса скоринга
		ScoreBaseWeight:     getEnvFloat("SCORE_BASE_WEIGHT", 0.7),
		ScorePeerWeight:     getEnvFloat("SCORE_PEER_WEIGHT", 0.05),
		ScoreAffinityWeight: getEnvFloat("SCORE_AFFINITY_WEIGHT", 0.05),
		ScorePeerCap:        getEnvInt("SCORE_PEER_CAP", 4),
		ScoreAffinityCap:    getEnvInt("SCORE_AFFINITY_CAP", 4),

		// Логирование
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}

	// Валидация
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64 или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
