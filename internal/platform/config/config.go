package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// AppPasswordHash is the bcrypt hash of the single owner password.
	AppPasswordHash string

	// NBS exchange rate source.
	NBSAPIURL  string
	NBSTimeout time.Duration

	// RateCurrencies is the allow-list of currency codes kept from the NBS feed.
	RateCurrencies []string

	RateRefreshCron     string
	RateRefreshTimezone string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "168h")
	viper.SetDefault("JWT_ISSUER", "pausal-backend")
	viper.SetDefault("APP_PASSWORD_HASH", "")
	viper.SetDefault("NBS_API_URL", "https://api.nbs.rs/exchange-rate/v1/rate/daily/")
	viper.SetDefault("NBS_TIMEOUT", "10s")
	viper.SetDefault("RATE_CURRENCIES", "EUR,USD,GBP,CHF,JPY,AUD,CAD,SEK,NOK,DKK")
	viper.SetDefault("RATE_REFRESH_CRON", "0 9 * * 1-5")
	viper.SetDefault("RATE_REFRESH_TIMEZONE", "Europe/Belgrade")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 24 * 7
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AppPasswordHash = viper.GetString("APP_PASSWORD_HASH")
	if cfg.AppPasswordHash == "" {
		// Default owner password for local development only.
		log.Println("Warning: APP_PASSWORD_HASH not set. Falling back to the default password 'admin123'. THIS IS NOT FOR PRODUCTION.")
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, hashErr
		}
		cfg.AppPasswordHash = string(hash)
	}

	cfg.NBSAPIURL = viper.GetString("NBS_API_URL")

	nbsTimeoutStr := viper.GetString("NBS_TIMEOUT")
	nbsTimeout, err := time.ParseDuration(nbsTimeoutStr)
	if err != nil {
		nbsTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for NBS_TIMEOUT ('%s'). Defaulting to %s.\n", nbsTimeoutStr, nbsTimeout.String())
	}
	cfg.NBSTimeout = nbsTimeout

	cfg.RateCurrencies = splitAndTrim(viper.GetString("RATE_CURRENCIES"))
	cfg.RateRefreshCron = viper.GetString("RATE_REFRESH_CRON")
	cfg.RateRefreshTimezone = viper.GetString("RATE_REFRESH_TIMEZONE")
	cfg.CORSAllowedOrigins = splitAndTrim(viper.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
