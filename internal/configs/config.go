package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type RESTConfig struct {
	Port string
}

type MarketplaceConfig struct {
	BaseURL        string
	TimeoutSeconds int
	// ServiceToken authenticates the background pending-message sync;
	// interactive calls forward the caller's own token instead.
	ServiceToken string
}

type StoreConfig struct {
	// Backend selects the durable KV tier: "memory", "redis" or "postgres".
	Backend         string
	RedisAddr       string
	RedisPassword   string
	DatabaseURL     string
	CacheTTLSeconds int
}

type RabbitMQConfig struct {
	Enabled bool
	URL     string
}

type SchedulerConfig struct {
	// PendingSyncSchedule is a cron spec, e.g. "@every 30s".
	PendingSyncSchedule string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Enabled bool
	Host    string
	Port    int
	Level   string
}

// AppConfig holds the whole application configuration.
type AppConfig struct {
	AppName      string
	Rest         RESTConfig
	Marketplace  MarketplaceConfig
	Store        StoreConfig
	RabbitMQ     RabbitMQConfig
	Scheduler    SchedulerConfig
	StdoutLogger StdoutLogConfig
	FluentBit    FluentBitConfig
}

// LoadConfig reads configuration from a .env file (when present) and the
// environment.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "listing-feed-service")
	cfg.Rest.Port = getEnvAsString("PORT", "5000")

	cfg.Marketplace.BaseURL = os.Getenv("MARKETPLACE_API_URL")
	if cfg.Marketplace.BaseURL == "" {
		return nil, fmt.Errorf("MARKETPLACE_API_URL environment variable is required")
	}
	cfg.Marketplace.TimeoutSeconds = getEnvAsInt("MARKETPLACE_TIMEOUT_SECONDS", 15)
	cfg.Marketplace.ServiceToken = os.Getenv("MARKETPLACE_SERVICE_TOKEN")

	cfg.Store.Backend = getEnvAsString("STORE_BACKEND", "memory")
	switch cfg.Store.Backend {
	case "memory":
	case "redis":
		cfg.Store.RedisAddr = os.Getenv("REDIS_ADDR")
		if cfg.Store.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when STORE_BACKEND=redis")
		}
		cfg.Store.RedisPassword = os.Getenv("REDIS_PASSWORD")
	case "postgres":
		cfg.Store.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.Store.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want memory, redis or postgres)", cfg.Store.Backend)
	}
	cfg.Store.CacheTTLSeconds = getEnvAsInt("CACHE_TTL_SECONDS", 300)

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			log.Println("WARNING: RABBITMQ_ENABLED is true, but RABBITMQ_URL is not set. Disabling RabbitMQ.")
			cfg.RabbitMQ.Enabled = false
		}
	}

	cfg.Scheduler.PendingSyncSchedule = getEnvAsString("PENDING_SYNC_SCHEDULE", "@every 30s")

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: environment variable %s (value: %s) could not be parsed as int: %v. Using default: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: environment variable %s (value: %s) could not be parsed as bool: %v. Using default: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
