// Package config reads settings from flags, falling back to the environment.
// A .env file in the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"Club_Portal/internal/pkg"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Port           int
	Env            string
	DBDriver       string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	KafkaBrokers   []string
	KafkaTopic     string
	SMTP           pkg.SMTPConfig
	AllowedOrigins []string
	PermissionFile string
	Bootstrap      BootstrapAdmin
}

type BootstrapAdmin struct {
	Email    string
	Username string
	Password string
}

func (c Config) DevMode() bool {
	return c.Env == EnvDevelopment
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads .env (if any) and then parses args.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse(args)
}

// Parse applies flags first, then environment variables, then defaults.
// Every missing required setting is reported in one error.
func Parse(args []string) (Config, error) {
	var (
		cfg      Config
		brokers  string
		origins  string
		smtpPort int
	)

	fs := pflag.NewFlagSet("club-portal", pflag.ContinueOnError)
	fs.IntVarP(&cfg.Port, "port", "p", 0, "HTTP port")
	fs.StringVar(&cfg.Env, "env", "", "development or production")
	fs.StringVar(&cfg.DBDriver, "db-driver", "", "mysql, postgres or sqlite")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "database DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "token signing secret (prefer env)")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", 0, "token lifetime")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", "", "redis address for the session registry")
	fs.StringVar(&cfg.RedisPassword, "redis-password", "", "redis password")
	fs.IntVar(&cfg.RedisDB, "redis-db", -1, "redis database")
	fs.StringVar(&brokers, "kafka-brokers", "", "comma separated kafka brokers for the audit stream")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", "", "audit topic")
	fs.StringVar(&cfg.SMTP.Host, "smtp-host", "", "smtp host for activation mail")
	fs.IntVar(&smtpPort, "smtp-port", 0, "smtp port")
	fs.StringVar(&cfg.SMTP.Username, "smtp-username", "", "smtp username")
	fs.StringVar(&cfg.SMTP.Password, "smtp-password", "", "smtp password")
	fs.StringVar(&cfg.SMTP.From, "smtp-from", "", "sender address")
	fs.StringVar(&origins, "allowed-origins", "", "comma separated CORS origins")
	fs.StringVar(&cfg.PermissionFile, "permissions", "", "role permission seed file")
	fs.StringVar(&cfg.Bootstrap.Email, "admin-email", "", "first admin email")
	fs.StringVar(&cfg.Bootstrap.Username, "admin-username", "", "first admin username")
	fs.StringVar(&cfg.Bootstrap.Password, "admin-password", "", "first admin password (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var problems []string
	intEnv := func(dst *int, unset int, key string, def int) {
		if *dst != unset {
			return
		}
		raw := os.Getenv(key)
		if raw == "" {
			*dst = def
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, "invalid "+key)
			return
		}
		*dst = n
	}
	strEnv := func(dst *string, key, def string) {
		if *dst == "" {
			*dst = os.Getenv(key)
		}
		if *dst == "" {
			*dst = def
		}
	}

	intEnv(&cfg.Port, 0, "PORT", 8080)
	strEnv(&cfg.Env, "APP_ENV", EnvDevelopment)
	strEnv(&cfg.DBDriver, "DB_DRIVER", "mysql")
	strEnv(&cfg.DatabaseURL, "DATABASE_URL", "")
	strEnv(&cfg.JWTSecret, "JWT_SECRET", "")
	strEnv(&cfg.RedisAddr, "REDIS_ADDR", "")
	strEnv(&cfg.RedisPassword, "REDIS_PASSWORD", "")
	intEnv(&cfg.RedisDB, -1, "REDIS_DB", 0)
	strEnv(&brokers, "KAFKA_BROKERS", "")
	strEnv(&cfg.KafkaTopic, "KAFKA_TOPIC", "club-portal.audit")
	strEnv(&cfg.SMTP.Host, "SMTP_HOST", "")
	intEnv(&smtpPort, 0, "SMTP_PORT", 587)
	strEnv(&cfg.SMTP.Username, "SMTP_USERNAME", "")
	strEnv(&cfg.SMTP.Password, "SMTP_PASSWORD", "")
	strEnv(&cfg.SMTP.From, "SMTP_FROM", "")
	strEnv(&origins, "ALLOWED_ORIGINS", "")
	strEnv(&cfg.PermissionFile, "PERMISSIONS_FILE", "")
	strEnv(&cfg.Bootstrap.Email, "BOOTSTRAP_EMAIL", "")
	strEnv(&cfg.Bootstrap.Username, "BOOTSTRAP_USERNAME", "")
	strEnv(&cfg.Bootstrap.Password, "BOOTSTRAP_PASSWORD", "")
	cfg.SMTP.Port = smtpPort
	cfg.KafkaBrokers = splitList(brokers)
	cfg.AllowedOrigins = splitList(origins)

	if cfg.TokenTTL == 0 {
		if raw := os.Getenv("TOKEN_TTL"); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil {
				problems = append(problems, "invalid TOKEN_TTL")
			}
			cfg.TokenTTL = d
		} else {
			cfg.TokenTTL = 24 * time.Hour
		}
	}

	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		problems = append(problems, "APP_ENV must be development or production")
	}
	switch cfg.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		problems = append(problems, "DB_DRIVER must be mysql, postgres or sqlite")
	}
	if cfg.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL required (use --database-url or env)")
	}
	if cfg.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET required")
	}
	if cfg.TokenTTL < 0 {
		problems = append(problems, "TOKEN_TTL must be positive")
	}

	if len(problems) > 0 {
		return Config{}, errors.New(strings.Join(problems, "; "))
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
