package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env      string
	Port     string
	LogLevel string

	DBDriver      string // mysql (default) or sqlite
	DatabaseURL   string // full DSN; overrides the DB_* parts when set
	DBHost        string
	DBPort        string
	DBName        string
	DBUser        string
	DBPassword    string
	DBAutoMigrate bool

	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	HealthAdminKey      string
	ImportMaxBytes      int64 // upload ceiling for /api/upload
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_DRIVER", "mysql")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_DATABASE", "RENT")
	viper.SetDefault("DB_USER", "root")
	viper.SetDefault("IMPORT_MAX_BYTES", 10<<20)

	return &Config{
		Env:                 viper.GetString("APP_ENV"),
		Port:                viper.GetString("PORT"),
		LogLevel:            viper.GetString("LOG_LEVEL"),
		DBDriver:            strings.ToLower(strings.TrimSpace(viper.GetString("DB_DRIVER"))),
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		DBHost:              viper.GetString("DB_HOST"),
		DBPort:              viper.GetString("DB_PORT"),
		DBName:              viper.GetString("DB_DATABASE"),
		DBUser:              viper.GetString("DB_USER"),
		DBPassword:          viper.GetString("DB_PASSWORD"),
		DBAutoMigrate:       viper.GetBool("DB_AUTO_MIGRATE"),
		RedisURL:            viper.GetString("REDIS_URL"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
		ImportMaxBytes:      viper.GetInt64("IMPORT_MAX_BYTES"),
	}, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
