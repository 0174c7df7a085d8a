package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port                    string
	GinMode                 string
	DBDriver                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	SQLitePath              string
	JWTSecret               string
	JWTTTL                  time.Duration
	MediaDir                string
	ReminderCron            string
	ReminderWindow          time.Duration
	FirebaseCredentialsFile string
	OpenAIAPIKey            string
	CORSAllowedOrigins      []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "daybook")
	v.SetDefault("DB_PASSWORD", "daybook")
	v.SetDefault("DB_NAME", "daybook")
	v.SetDefault("SQLITE_PATH", "daybook.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("MEDIA_DIR", "./media")
	v.SetDefault("REMINDER_CRON", "0 8 * * *")
	v.SetDefault("REMINDER_WINDOW", "24h")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	return &Config{
		Port:                    v.GetString("PORT"),
		GinMode:                 v.GetString("GIN_MODE"),
		DBDriver:                strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:                  v.GetString("DB_HOST"),
		DBPort:                  v.GetString("DB_PORT"),
		DBUser:                  v.GetString("DB_USER"),
		DBPassword:              v.GetString("DB_PASSWORD"),
		DBName:                  v.GetString("DB_NAME"),
		SQLitePath:              v.GetString("SQLITE_PATH"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		JWTTTL:                  v.GetDuration("JWT_TTL"),
		MediaDir:                v.GetString("MEDIA_DIR"),
		ReminderCron:            v.GetString("REMINDER_CRON"),
		ReminderWindow:          v.GetDuration("REMINDER_WINDOW"),
		FirebaseCredentialsFile: v.GetString("FIREBASE_CREDENTIALS_FILE"),
		OpenAIAPIKey:            v.GetString("OPENAI_API_KEY"),
		CORSAllowedOrigins:      splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// devJWTSecret is only used outside release mode when JWT_SECRET is unset.
const devJWTSecret = "daybook-dev-secret"

// Validate checks settings that would otherwise fail at first use. In debug
// mode a missing JWT secret is replaced by a fixed development value.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.IsRelease() {
			return errors.New("JWT_SECRET is required in release mode")
		}
		log.Println("JWT_SECRET not set, using an insecure development secret")
		c.JWTSecret = devJWTSecret
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.ReminderWindow <= 0 {
		return fmt.Errorf("REMINDER_WINDOW must be positive, got %s", c.ReminderWindow)
	}
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
