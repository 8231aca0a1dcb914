package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Environment string
	Port        string
	Database    DatabaseConfig
	JWT         JWTConfig
	CORS        CORSConfig
	AI          AIConfig
	Storage     StorageConfig
	Tasks       TasksConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

type JWTConfig struct {
	Secret    string
	ExpiresIn string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type AIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type StorageConfig struct {
	Dir string
}

type TasksConfig struct {
	Workers int
	Buffer  int
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "3001"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "postgres"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "smartlist"),
			User:     getEnv("DB_USER", "smartlist_user"),
			Password: getEnv("DB_PASSWORD", "smartlist_password"),
		},
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", "change-this-secret-in-production"),
			ExpiresIn: getEnv("JWT_EXPIRES_IN", "168h"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				getEnv("FRONTEND_URL", "http://localhost:3000"),
				"http://localhost:3000",
			},
		},
		AI: AIConfig{
			BaseURL: getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
			APIKey:  getEnv("AI_API_KEY", ""),
			Model:   getEnv("AI_MODEL", "gpt-4.1-nano"),
		},
		Storage: StorageConfig{
			Dir: getEnv("STORAGE_DIR", "./uploads"),
		},
		Tasks: TasksConfig{
			Workers: getEnvInt("TASK_WORKERS", 4),
			Buffer:  getEnvInt("TASK_BUFFER", 256),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
