package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Cognito       CognitoConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"ECHNAVI_APP_ENV" required:"true"`
	Port         string `envconfig:"ECHNAVI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ECHNAVI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ECHNAVI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ECHNAVI_DB_DSN"`
	Driver string `envconfig:"ECHNAVI_DB_DRIVER" default:"postgres"`

	// The original deployment supplied discrete connection parts; they are
	// still honored when no DSN is present.
	LegacyHost     string `envconfig:"ECHNAVI_DB_HOST"`
	LegacyPort     int    `envconfig:"ECHNAVI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ECHNAVI_DB_USER"`
	LegacyPassword string `envconfig:"ECHNAVI_DB_PASSWORD"`
	LegacyName     string `envconfig:"ECHNAVI_DB_NAME"`
	LegacySSLMode  string `envconfig:"ECHNAVI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ECHNAVI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ECHNAVI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ECHNAVI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ECHNAVI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ECHNAVI_REDIS_URL"`
	Address      string        `envconfig:"ECHNAVI_REDIS_ADDR"`
	Password     string        `envconfig:"ECHNAVI_REDIS_PASSWORD"`
	DB           int           `envconfig:"ECHNAVI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ECHNAVI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ECHNAVI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ECHNAVI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ECHNAVI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ECHNAVI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CognitoConfig identifies the user pool every dashboard credential lives in.
type CognitoConfig struct {
	UserPoolID   string `envconfig:"ECHNAVI_COGNITO_USER_POOL_ID" required:"true"`
	ClientID     string `envconfig:"ECHNAVI_COGNITO_CLIENT_ID" required:"true"`
	ClientSecret string `envconfig:"ECHNAVI_COGNITO_CLIENT_SECRET" required:"true"`
	Region       string `envconfig:"ECHNAVI_COGNITO_REGION" default:"ap-northeast-1"`

	// Optional static credentials for local development; the default AWS
	// credential chain applies when empty.
	AccessKeyID     string `envconfig:"ECHNAVI_AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"ECHNAVI_AWS_SECRET_ACCESS_KEY"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ECHNAVI_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ECHNAVI_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ECHNAVI_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ECHNAVI_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ECHNAVI_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"ECHNAVI_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginPhoneLimit int           `envconfig:"ECHNAVI_AUTH_RATE_LIMIT_LOGIN_PHONE_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"ECHNAVI_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ECHNAVI_AUTO_MIGRATE" default:"false"`
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
