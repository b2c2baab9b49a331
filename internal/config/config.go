package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	ServerPort string

	JWTSecret    string
	JWTExpiresIn time.Duration

	AutoMigrate    bool
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Msg("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "taskmanager"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		ServerPort:     getEnv("SERVER_PORT", getEnv("PORT", "8080")),
		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiresIn:   getDuration("JWT_EXPIRES_IN", 2*time.Hour),
		AutoMigrate:    getBool("AUTO_MIGRATE", true),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// DSN is the gorm/pgx keyword form of the connection parameters. Values are
// single-quoted so spaces and quotes in credentials survive parsing.
func (c *Config) DSN() string {
	pairs := []struct{ key, value string }{
		{"host", c.DBHost},
		{"port", c.DBPort},
		{"user", c.DBUser},
		{"password", c.DBPassword},
		{"dbname", c.DBName},
		{"sslmode", c.DBSSLMode},
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.key + "=" + quoteDSNValue(p.value)
	}
	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid duration, using default")
		return defaultVal
	}
	return d
}

func getBool(key string, defaultVal bool) bool {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid boolean, using default")
		return defaultVal
	}
	return b
}

func getList(key string, defaultVal []string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(raw) == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
