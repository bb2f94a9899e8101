package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"MARKETLINK_APP_ENV" required:"true"`
	Port         string `envconfig:"MARKETLINK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MARKETLINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MARKETLINK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MARKETLINK_DB_DSN"`
	Driver string `envconfig:"MARKETLINK_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"MARKETLINK_DB_HOST"`
	Port     int    `envconfig:"MARKETLINK_DB_PORT" default:"5432"`
	User     string `envconfig:"MARKETLINK_DB_USER"`
	Password string `envconfig:"MARKETLINK_DB_PASSWORD"`
	Name     string `envconfig:"MARKETLINK_DB_NAME"`
	SSLMode  string `envconfig:"MARKETLINK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MARKETLINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MARKETLINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MARKETLINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MARKETLINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MARKETLINK_REDIS_URL"`
	Address      string        `envconfig:"MARKETLINK_REDIS_ADDR"`
	Password     string        `envconfig:"MARKETLINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"MARKETLINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MARKETLINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MARKETLINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MARKETLINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MARKETLINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MARKETLINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	TTL        time.Duration `envconfig:"MARKETLINK_SESSION_TTL" default:"24h"`
	CookieName string        `envconfig:"MARKETLINK_SESSION_COOKIE" default:"marketlink_session"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MARKETLINK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MARKETLINK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if strings.EqualFold(db.Driver, DriverSQLite) {
		// sqlite falls back to a local file when no DSN is supplied
		db.DSN = "file:marketlink.db?_fk=1"
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
