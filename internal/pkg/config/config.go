package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

const throttleEnabledKey = "LOGIN_THROTTLE_ENABLED"

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// StoreDriver selects the user store: "mongo" or "memory".
	StoreDriver string `env:"STORE_DRIVER, default=mongo"`

	JWT      JWTConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
	Admin    AdminConfig
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET, required"`
	Issuer     string        `env:"JWT_ISSUER, default=jwt-auth-api"`
	TTL        time.Duration `env:"JWT_TTL,    default=1h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=jwt_auth"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// ThrottleConfig needs Redis. With STORE_DRIVER=memory it is off unless
// LOGIN_THROTTLE_ENABLED is set explicitly.
type ThrottleConfig struct {
	Enabled     bool          `env:"LOGIN_THROTTLE_ENABLED, default=true"`
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS,     default=5"`
	Lockout     time.Duration `env:"LOGIN_LOCKOUT,          default=15m"`
}

// AdminConfig seeds an administrator at startup when both fields are set.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through l and validates it.
func LoadFrom(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if cfg.StoreDriver == StoreMemory {
		if _, set := l.Lookup(throttleEnabledKey); !set {
			cfg.Throttle.Enabled = false
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMongo, StoreMemory, c.StoreDriver)
	}
	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}
