package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string
		Port string
	}
	Database struct {
		Dsn          string
		MaxIdleConns int
		MaxOpenConns int
	}
	Redis struct {
		Addr     string
		DB       int
		Password string
	}
	RabbitMQ struct {
		Url   string
		Queue string
	}
	Jwt struct {
		Secret string
	}
	Rating struct {
		Min float64
		Max float64
	}
}

var AppConfig *Config

func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	viper.SetDefault("rating.min", 1.0)
	viper.SetDefault("rating.max", 5.0)

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	AppConfig = &Config{}

	if err := viper.Unmarshal(AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}

	AppConfig.Jwt.Secret = getEnvOrDefault("JWT_SECRET", AppConfig.Jwt.Secret)

	initDB()
	initRedis()
	initRabbit()
}

// RatingBounds returns the configured rating range, falling back to the
// defaults when config has not been loaded (tests wire the DB directly).
func RatingBounds() (float64, float64) {
	if AppConfig == nil || AppConfig.Rating.Max <= AppConfig.Rating.Min {
		return 1.0, 5.0
	}
	return AppConfig.Rating.Min, AppConfig.Rating.Max
}

// JwtSecret returns the signing secret, with a development fallback.
func JwtSecret() []byte {
	if AppConfig == nil || AppConfig.Jwt.Secret == "" {
		return []byte("authorsheaven-dev-secret")
	}
	return []byte(AppConfig.Jwt.Secret)
}

// getEnvOrDefault reads an environment variable with a fallback.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
