package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisContextDB       int    `mapstructure:"REDIS_CONTEXT_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Telephony collaborator for outbound voice calls.
	TelephonyURL       string `mapstructure:"TELEPHONY_URL"`
	TelephonyFromPhone string `mapstructure:"TELEPHONY_FROM_PHONE"`

	// Scheduling defaults.
	DefaultTrainerID   string `mapstructure:"DEFAULT_TRAINER_ID"`
	DefaultLocation    string `mapstructure:"DEFAULT_LOCATION"`
	ReminderLeadHours  int    `mapstructure:"REMINDER_LEAD_HOURS"`
	ReminderSweepMin   int    `mapstructure:"REMINDER_SWEEP_MINUTES"`
	CallDelaySeconds   int    `mapstructure:"CALL_DELAY_SECONDS"`
	ContextTTLMinutes  int    `mapstructure:"CONTEXT_TTL_MINUTES"`
	BusinessOpenHour   int    `mapstructure:"BUSINESS_OPEN_HOUR"`
	BusinessCloseHour  int    `mapstructure:"BUSINESS_CLOSE_HOUR"`
	SlotGranularityMin int    `mapstructure:"SLOT_GRANULARITY_MINUTES"`
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
	viper.SetDefault("REDIS_CONTEXT_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "coachline")
	viper.SetDefault("TELEPHONY_URL", "http://telephony:8000")
	viper.SetDefault("TELEPHONY_FROM_PHONE", "")
	viper.SetDefault("DEFAULT_TRAINER_ID", "")
	viper.SetDefault("DEFAULT_LOCATION", "Gym")
	viper.SetDefault("REMINDER_LEAD_HOURS", 24)
	viper.SetDefault("REMINDER_SWEEP_MINUTES", 15)
	viper.SetDefault("CALL_DELAY_SECONDS", 5)
	viper.SetDefault("CONTEXT_TTL_MINUTES", 30)
	viper.SetDefault("BUSINESS_OPEN_HOUR", 9)
	viper.SetDefault("BUSINESS_CLOSE_HOUR", 18)
	viper.SetDefault("SLOT_GRANULARITY_MINUTES", 30)

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
