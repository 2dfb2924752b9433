package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "MAROC"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MAROC_DB_DSN"
	EnvDBHost = "MAROC_DB_HOST"
	EnvDBUser = "MAROC_DB_USER"
	EnvDBName = "MAROC_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Cart         CartConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
	RateLimit    RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MAROC_APP_ENV" required:"true"`
	Port         string `envconfig:"MAROC_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MAROC_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MAROC_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MAROC_DB_DSN"`
	Driver string `envconfig:"MAROC_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MAROC_DB_HOST"`
	LegacyPort     int    `envconfig:"MAROC_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MAROC_DB_USER"`
	LegacyPassword string `envconfig:"MAROC_DB_PASSWORD"`
	LegacyName     string `envconfig:"MAROC_DB_NAME"`
	LegacySSLMode  string `envconfig:"MAROC_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MAROC_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MAROC_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MAROC_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MAROC_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MAROC_REDIS_URL"`
	Address      string        `envconfig:"MAROC_REDIS_ADDR"`
	Password     string        `envconfig:"MAROC_REDIS_PASSWORD"`
	DB           int           `envconfig:"MAROC_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MAROC_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MAROC_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MAROC_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MAROC_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MAROC_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MAROC_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MAROC_JWT_ISSUER" default:"marocvoyages"`
	ExpirationMinutes int    `envconfig:"MAROC_JWT_EXPIRATION_MINUTES" default:"1440"`
	SessionTTLMinutes int    `envconfig:"MAROC_SESSION_TTL_MINUTES" default:"1440"`
}

// SessionTTL returns the admin session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MAROC_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MAROC_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MAROC_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MAROC_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MAROC_ARGON_KEY_LEN" default:"32"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"MAROC_CART_TTL" default:"720h"`
}

type CheckoutConfig struct {
	ShippingFee int `envconfig:"MAROC_SHIPPING_FEE" default:"50"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MAROC_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MAROC_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MAROC_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type RateLimitConfig struct {
	LoginLimit  int           `envconfig:"MAROC_LOGIN_RATE_LIMIT" default:"10"`
	LoginWindow time.Duration `envconfig:"MAROC_LOGIN_RATE_WINDOW" default:"1m"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
