package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Redis configuration (session cache + task queue).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Mongo configuration (optional slot store backing).
	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	// Booking engine knobs.
	SessionTTLHours      int     `mapstructure:"SESSION_TTL_HOURS"`
	SweepIntervalSeconds int     `mapstructure:"SWEEP_INTERVAL_SECONDS"`
	SlotHorizonDays      int     `mapstructure:"SLOT_HORIZON_DAYS"`
	SlotWindowDays       int     `mapstructure:"SLOT_WINDOW_DAYS"`
	SlotCapacity         int     `mapstructure:"SLOT_CAPACITY"`
	SlotOpenHour         int     `mapstructure:"SLOT_OPEN_HOUR"`
	SlotCloseHour        int     `mapstructure:"SLOT_CLOSE_HOUR"`
	SlotDurationMinutes  int     `mapstructure:"SLOT_DURATION_MINUTES"`
	TaxRate              float64 `mapstructure:"TAX_RATE"`
	MultiServiceDiscount float64 `mapstructure:"MULTI_SERVICE_DISCOUNT"`
	MaxDynamicAdjustment float64 `mapstructure:"MAX_DYNAMIC_ADJUSTMENT"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("MONGO_URI", "")
	viper.SetDefault("MONGO_DATABASE", "fixpoint")
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("SWEEP_INTERVAL_SECONDS", 60)
	viper.SetDefault("SLOT_HORIZON_DAYS", 30)
	viper.SetDefault("SLOT_WINDOW_DAYS", 7)
	viper.SetDefault("SLOT_CAPACITY", 3)
	viper.SetDefault("SLOT_OPEN_HOUR", 9)
	viper.SetDefault("SLOT_CLOSE_HOUR", 18)
	viper.SetDefault("SLOT_DURATION_MINUTES", 60)
	viper.SetDefault("TAX_RATE", 0.20)
	viper.SetDefault("MULTI_SERVICE_DISCOUNT", 0.10)
	viper.SetDefault("MAX_DYNAMIC_ADJUSTMENT", 0.25)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
