package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds client configuration
type Config struct {
	API       APIConfig
	Storage   StorageConfig
	Redis     RedisConfig
	MongoDB   MongoDBConfig
	DevServer DevServerConfig
	LogLevel  string
}

type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateRPS   float64
	RateBurst int
}

// StorageConfig selects the local key-value backend: file (default),
// memory, redis or mongo.
type StorageConfig struct {
	Backend string
	Path    string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type DevServerConfig struct {
	Port      string
	JWTSecret string
}

// LoadConfig loads configuration from environment variables and a .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("API_BASE_URL", "http://localhost:5100")
	viper.SetDefault("API_TIMEOUT", 15)
	viper.SetDefault("API_RATE_RPS", 5.0)
	viper.SetDefault("API_RATE_BURST", 10)
	viper.SetDefault("STORAGE_BACKEND", "file")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("MONGODB_DATABASE", "storefront")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("DEVSERVER_PORT", "5100")
	viper.SetDefault("DEVSERVER_JWT_SECRET", "dev-only-secret-do-not-use-in-prod")

	cfg := &Config{
		API: APIConfig{
			BaseURL:   viper.GetString("API_BASE_URL"),
			Timeout:   time.Duration(viper.GetInt("API_TIMEOUT")) * time.Second,
			RateRPS:   viper.GetFloat64("API_RATE_RPS"),
			RateBurst: viper.GetInt("API_RATE_BURST"),
		},
		Storage: StorageConfig{
			Backend: viper.GetString("STORAGE_BACKEND"),
			Path:    viper.GetString("STORAGE_PATH"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		DevServer: DevServerConfig{
			Port:      viper.GetString("DEVSERVER_PORT"),
			JWTSecret: viper.GetString("DEVSERVER_JWT_SECRET"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultStoragePath()
	}

	return cfg, nil
}

// defaultStoragePath places the state file under the user's home directory,
// falling back to the working directory when home is unavailable.
func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront.json"
	}
	return filepath.Join(home, ".lumashop", "storefront.json")
}
