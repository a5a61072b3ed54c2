package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Back-office operator
	AdminUsername     string `mapstructure:"ADMIN_USERNAME"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	// 1Link header credentials and request budget
	OneLinkUsername  string `mapstructure:"ONELINK_API_USERNAME"`
	OneLinkPassword  string `mapstructure:"ONELINK_API_PASSWORD"`
	OneLinkRateLimit limiter.Rate

	// Bulk challan generation
	ChallanDueDay             int
	ChallanNoMaxAttempts      int
	ChallanBatchSize          int
	ChallanGenerationSchedule string `mapstructure:"CHALLAN_GENERATION_SCHEDULE"`

	AMQPURL            string `mapstructure:"AMQP_URL"`
	CORSAllowedOrigins []string
}

const (
	defaultJWTSecret      = "a-very-secret-key-should-be-longer-and-random"
	defaultOneLinkRate    = "60-M"
	defaultDueDay         = 20
	defaultMaxAttempts    = 10
	defaultBatchSize      = 100
	maxBatchSize          = 1000
	defaultMigrationsPath = "file://migrations"
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", defaultMigrationsPath)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "fee-management-app")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("ONELINK_API_USERNAME", "")
	viper.SetDefault("ONELINK_API_PASSWORD", "")
	viper.SetDefault("ONELINK_RATE_LIMIT", defaultOneLinkRate)
	viper.SetDefault("CHALLAN_DUE_DAY", defaultDueDay)
	viper.SetDefault("CHALLAN_NO_MAX_ATTEMPTS", defaultMaxAttempts)
	viper.SetDefault("CHALLAN_BATCH_SIZE", defaultBatchSize)
	viper.SetDefault("CHALLAN_GENERATION_SCHEDULE", "")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	// Environment variables override defaults and .env values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1 // Default to 1 hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "fee-management-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.AdminUsername = viper.GetString("ADMIN_USERNAME")
	cfg.AdminPasswordHash = viper.GetString("ADMIN_PASSWORD_HASH")
	if cfg.AdminPasswordHash == "" {
		log.Println("Warning: ADMIN_PASSWORD_HASH not set. Back-office login is disabled.")
	}

	cfg.OneLinkUsername = viper.GetString("ONELINK_API_USERNAME")
	cfg.OneLinkPassword = viper.GetString("ONELINK_API_PASSWORD")
	if cfg.OneLinkUsername == "" || cfg.OneLinkPassword == "" {
		log.Println("Warning: ONELINK_API_USERNAME or ONELINK_API_PASSWORD not set. 1Link requests will be rejected.")
	}

	rateStr := viper.GetString("ONELINK_RATE_LIMIT")
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted(defaultOneLinkRate)
		log.Printf("Warning: Invalid value for ONELINK_RATE_LIMIT ('%s'). Defaulting to %s.\n", rateStr, defaultOneLinkRate)
	}
	cfg.OneLinkRateLimit = rate

	cfg.ChallanDueDay = intInRange("CHALLAN_DUE_DAY", defaultDueDay, 1, 28)
	cfg.ChallanNoMaxAttempts = intInRange("CHALLAN_NO_MAX_ATTEMPTS", defaultMaxAttempts, 1, 1000)
	cfg.ChallanBatchSize = intInRange("CHALLAN_BATCH_SIZE", defaultBatchSize, 1, maxBatchSize)
	cfg.ChallanGenerationSchedule = strings.TrimSpace(viper.GetString("CHALLAN_GENERATION_SCHEDULE"))

	cfg.AMQPURL = viper.GetString("AMQP_URL")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = defaultMigrationsPath
	}

	return cfg, nil
}

// intInRange reads an integer key, falling back to def when it is malformed or outside [lo, hi].
func intInRange(key string, def, lo, hi int) int {
	raw := viper.GetString(key)
	v := viper.GetInt(key)
	if v < lo || v > hi {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %d.\n", key, raw, def)
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
