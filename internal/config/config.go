package config

import (
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Costs    CostConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AuthConfig struct {
	APIKeys         []string
	JWTSecret       string
	TokenTTLMinutes int
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ProfitTTLSeconds int
}

// CostConfig carries the fixed-cost rates and yield factors used by the
// profit reports and the inventory ledger. They are business constants for a
// single roastery, not derived from any stored rate table.
type CostConfig struct {
	PackagingPerKg    float64 // bag cost per kg of blended beans
	ShippingPerBox    float64 // courier + box per parcel
	ShippingBoxKg     float64 // kg capacity of one parcel
	BoxPerOrder       float64
	RentPerMonth      float64
	BlendYieldFactor  float64 // 12kg raw in per 10kg blended out
	SingleOriginYield float64 // roasting shrinkage for single origins
	LegacyBlendRatios bool    // use the fixed four-origin table instead of blend_components
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8002")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "besco")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("API_KEYS", "")
		viper.SetDefault("JWT_SECRET", "change-this-secret")
		viper.SetDefault("TOKEN_TTL_MINUTES", 30)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_PROFIT_TTL_SECONDS", 60)
		viper.SetDefault("COST_PACKAGING_PER_KG", 1000.0)
		viper.SetDefault("COST_SHIPPING_PER_BOX", 6000.0)
		viper.SetDefault("COST_SHIPPING_BOX_KG", 15.0)
		viper.SetDefault("COST_BOX_PER_ORDER", 1000.0)
		viper.SetDefault("COST_RENT_PER_MONTH", 650000.0)
		viper.SetDefault("BLEND_YIELD_FACTOR", 1.2)
		viper.SetDefault("SINGLE_ORIGIN_YIELD", 1.23)
		viper.SetDefault("LEGACY_BLEND_RATIOS", false)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Auth: AuthConfig{
				APIKeys:         splitKeys(viper.GetString("API_KEYS")),
				JWTSecret:       viper.GetString("JWT_SECRET"),
				TokenTTLMinutes: viper.GetInt("TOKEN_TTL_MINUTES"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				ProfitTTLSeconds: viper.GetInt("CACHE_PROFIT_TTL_SECONDS"),
			},
			Costs: CostConfig{
				PackagingPerKg:    viper.GetFloat64("COST_PACKAGING_PER_KG"),
				ShippingPerBox:    viper.GetFloat64("COST_SHIPPING_PER_BOX"),
				ShippingBoxKg:     viper.GetFloat64("COST_SHIPPING_BOX_KG"),
				BoxPerOrder:       viper.GetFloat64("COST_BOX_PER_ORDER"),
				RentPerMonth:      viper.GetFloat64("COST_RENT_PER_MONTH"),
				BlendYieldFactor:  viper.GetFloat64("BLEND_YIELD_FACTOR"),
				SingleOriginYield: viper.GetFloat64("SINGLE_ORIGIN_YIELD"),
				LegacyBlendRatios: viper.GetBool("LEGACY_BLEND_RATIOS"),
			},
		}
	})

	return instance
}

func splitKeys(raw string) []string {
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			keys = append(keys, part)
		}
	}
	return keys
}
