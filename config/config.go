package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir     string
	MaxUploadSize int64

	MigrationsURL string

	AllowedOrigins []string
}

// Load reads configuration from the environment. Every value except the
// signing secret has a development default.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "luxeshop")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("UPLOAD_DIR", "uploads/products")
	v.SetDefault("MAX_UPLOAD_SIZE", 5<<20)
	v.SetDefault("MIGRATIONS_URL", "file://database/migration")
	v.SetDefault("ALLOWED_ORIGINS", "*")

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return &Config{
		ServerPort:     v.GetString("SERVER_PORT"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSL_MODE"),
		JWTSecret:      secret,
		TokenTTL:       v.GetDuration("TOKEN_TTL"),
		UploadDir:      v.GetString("UPLOAD_DIR"),
		MaxUploadSize:  v.GetInt64("MAX_UPLOAD_SIZE"),
		MigrationsURL:  v.GetString("MIGRATIONS_URL"),
		AllowedOrigins: v.GetStringSlice("ALLOWED_ORIGINS"),
	}, nil
}
