package cmd

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string `mapstructure:"http_port"`
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSslMode  string `mapstructure:"db_sslmode"`

	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	CatalogCacheTTL time.Duration `mapstructure:"catalog_cache_ttl"`

	AMQPURL               string        `mapstructure:"amqp_url"`
	NotificationsExchange string        `mapstructure:"notifications_exchange"`
	NotificationTimeout   time.Duration `mapstructure:"notification_timeout"`

	JWTSecret string `mapstructure:"jwt_secret"`
	JWTIssuer string `mapstructure:"jwt_issuer"`

	TaxRate               string        `mapstructure:"tax_rate"`
	DeliveryFlatFee       string        `mapstructure:"delivery_flat_fee"`
	FreeDeliveryThreshold string        `mapstructure:"free_delivery_threshold"`
	DefaultDeliveryETA    time.Duration `mapstructure:"default_delivery_eta"`

	LogLevel       string `mapstructure:"log_level"`
	LogDevelopment bool   `mapstructure:"log_development"`
}

var defaults = map[string]any{
	"http_port":               "8080",
	"db_host":                 "localhost",
	"db_port":                 "5432",
	"db_user":                 "postgres",
	"db_password":             "postgres",
	"db_name":                 "marketplace",
	"db_sslmode":              "disable",
	"redis_addr":              "",
	"redis_password":          "",
	"redis_db":                0,
	"catalog_cache_ttl":       "5m",
	"amqp_url":                "",
	"notifications_exchange":  "notifications_fanout",
	"notification_timeout":    "5s",
	"jwt_secret":              "change-me",
	"jwt_issuer":              "",
	"tax_rate":                "0.05",
	"delivery_flat_fee":       "50.00",
	"free_delivery_threshold": "500.00",
	"default_delivery_eta":    "45m",
	"log_level":               "info",
	"log_development":         false,
}

// LoadConfig reads the environment, after loading envFile when it exists.
// Every key has a default, so an empty environment yields a working local setup.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		// A missing .env is normal outside local development.
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return config, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// PricingPolicy parses the pricing keys.
func (c Config) PricingPolicy() (services.PricingPolicy, error) {
	rate, rateErr := decimal.NewFromString(c.TaxRate)
	if rateErr != nil {
		rateErr = fmt.Errorf("TAX_RATE: %w", rateErr)
	}
	fee, feeErr := kernel.MoneyFromString(c.DeliveryFlatFee)
	if feeErr != nil {
		feeErr = fmt.Errorf("DELIVERY_FLAT_FEE: %w", feeErr)
	}
	threshold, thresholdErr := kernel.MoneyFromString(c.FreeDeliveryThreshold)
	if thresholdErr != nil {
		thresholdErr = fmt.Errorf("FREE_DELIVERY_THRESHOLD: %w", thresholdErr)
	}
	if err := errors.Join(rateErr, feeErr, thresholdErr); err != nil {
		return services.PricingPolicy{}, err
	}

	policy := services.PricingPolicy{
		TaxRate:               rate,
		FlatDeliveryFee:       fee,
		FreeDeliveryThreshold: threshold,
	}
	return policy, policy.Validate()
}
