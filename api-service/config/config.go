package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port      string   `yaml:"port" env:"PORT" env-default:"8005"`
	JWTSecret string   `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"your-super-secret-key"`
	Auth      Auth     `yaml:"auth"`
	Admin     Admin    `yaml:"admin"`
	Database  Database `yaml:"database"`
	Redis     Redis    `yaml:"redis"`
	Kafka     Kafka    `yaml:"kafka"`
	Log       Log      `yaml:"log"`
}

type Auth struct {
	TokenTTLMinutes int `yaml:"token_ttl_minutes" env:"ACCESS_TOKEN_TTL_MINUTES" env-default:"30"`
}

func (a *Auth) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// Admin is the account promoted (or created) at startup.
type Admin struct {
	Email    string `yaml:"email" env:"ADMIN_EMAIL" env-default:"admin@admin.com"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD" env-default:"admin123"`
}

type Database struct {
	User         string `yaml:"user" env:"DB_USER" env-default:"user"`
	Password     string `yaml:"password" env:"DB_PASSWORD" env-default:"password"`
	DatabaseName string `yaml:"database_name" env:"DB_NAME" env-default:"event_booking"`
	Host         string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port         string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	SSLMode      string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`

	// Connection Pool Settings
	MaxOpenConns    int `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime int `yaml:"conn_max_lifetime_minutes" env:"DB_CONN_MAX_LIFETIME" env-default:"30"`

	// Startup retry until the database accepts connections
	ConnectAttempts int `yaml:"connect_attempts" env:"DB_CONNECT_ATTEMPTS" env-default:"30"`
	ConnectBackoff  int `yaml:"connect_backoff_seconds" env:"DB_CONNECT_BACKOFF" env-default:"2"`
}

func (d *Database) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DatabaseName, d.SSLMode)
}

type Redis struct {
	Host            string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port            string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password        string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB              int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	EventListTTLSec int    `yaml:"event_list_ttl_seconds" env:"REDIS_EVENT_LIST_TTL" env-default:"60"`
}

func (r *Redis) GetRedisURL() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func (r *Redis) EventListTTL() time.Duration {
	return time.Duration(r.EventListTTLSec) * time.Second
}

type Kafka struct {
	Brokers           []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092" env-separator:","`
	NotificationTopic string   `yaml:"notification_topic" env:"KAFKA_NOTIFICATION_TOPIC" env-default:"notification-requests"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

func Initialise(configPath string, useEnv bool) (*Config, error) {
	cfg := &Config{}

	if useEnv {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment variables: %w", err)
		}
		return cfg, nil
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
			return cfg, nil
		}
	}

	// Fallback to environment variables
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}

	return cfg, nil
}
