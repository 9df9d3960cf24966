package config

import (
	"fmt"
	"log"
	"time"

	"roombook/models"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AuditLogPath      string `mapstructure:"AUDIT_LOG_PATH"`

	// Booking store.
	StoreDriver  string        `mapstructure:"STORE_DRIVER"` // "mongo" or "memory"
	DatabaseURL  string        `mapstructure:"DATABASE_URL"`
	DatabaseName string        `mapstructure:"DATABASE_NAME"`
	StoreTimeout time.Duration `mapstructure:"STORE_TIMEOUT"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB    int    `mapstructure:"REDIS_LOCK_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	LockDriver    string        `mapstructure:"LOCK_DRIVER"` // "local" or "redis"
	LockTTL       time.Duration `mapstructure:"LOCK_TTL"`
	SessionDriver string        `mapstructure:"SESSION_DRIVER"` // "memory" or "redis"

	// Operating day.
	DayStart          string `mapstructure:"DAY_START"`
	DayEnd            string `mapstructure:"DAY_END"`
	MaxBookingMinutes int    `mapstructure:"MAX_BOOKING_MINUTES"`

	// Daily reset.
	ResetDriver   string `mapstructure:"RESET_DRIVER"` // "cron" or "asynq"
	ResetSchedule string `mapstructure:"RESET_SCHEDULE"`

	// Domain events.
	AMQPURL      string `mapstructure:"AMQP_URL"`
	AMQPExchange string `mapstructure:"AMQP_EXCHANGE"`

	Buildings []models.Building `mapstructure:"BUILDINGS"`
}

var AppConfig Config

var defaultBuildings = []map[string]interface{}{
	{"name": "Videosecurity", "rooms": []string{"Silver", "Gold", "Антикамера"}},
	{"name": "Victiana", "rooms": []string{"Fres", "Trening room", "Conferens", "Mars", "White"}},
}

// LoadConfig parses command line flags and fills AppConfig. It exits on error.
func LoadConfig() {
	cfg, err := Load(pflag.CommandLine, nil)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load reads flags from args (os.Args when nil), an optional .env file,
// config.yaml and the environment, in increasing order of precedence below flags.
func Load(fs *pflag.FlagSet, args []string) (Config, error) {
	fs.String("config", "", "path to a config file")
	fs.String("port", "", "HTTP listen port")
	if args == nil {
		pflag.Parse()
	} else if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.AutomaticEnv()
	if err := v.BindPFlag("APP_PORT", fs.Lookup("port")); err != nil {
		return Config{}, err
	}

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("AUDIT_LOG_PATH", "user_requests.log")
	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "roombook")
	v.SetDefault("STORE_TIMEOUT", "5s")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_LOCK_DB", 0)
	v.SetDefault("REDIS_SESSION_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("LOCK_DRIVER", "local")
	v.SetDefault("LOCK_TTL", "5s")
	v.SetDefault("SESSION_DRIVER", "memory")
	v.SetDefault("DAY_START", "08:30")
	v.SetDefault("DAY_END", "19:00")
	v.SetDefault("MAX_BOOKING_MINUTES", 480)
	v.SetDefault("RESET_DRIVER", "cron")
	v.SetDefault("RESET_SCHEDULE", "0 0 * * *")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "roombook")
	v.SetDefault("BUILDINGS", defaultBuildings)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := cfg.Window(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Window converts the DAY_* settings into a booking window.
func (c Config) Window() (models.Window, error) {
	start, err := models.ParseClock(c.DayStart)
	if err != nil {
		return models.Window{}, fmt.Errorf("DAY_START: %w", err)
	}
	end, err := models.ParseClock(c.DayEnd)
	if err != nil {
		return models.Window{}, fmt.Errorf("DAY_END: %w", err)
	}
	maxDur, err := models.FromMinutes(c.MaxBookingMinutes)
	if err != nil {
		return models.Window{}, fmt.Errorf("MAX_BOOKING_MINUTES: %w", err)
	}
	w := models.Window{Start: start, End: end, MaxDuration: maxDur}
	if err := w.Validate(); err != nil {
		return models.Window{}, err
	}
	return w, nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
