package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	Redis   RedisConfig   `yaml:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Log     LogConfig     `yaml:"log"`
	Seed    SeedConfig    `yaml:"seed"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

// StorageConfig selects the persistence backend at process start:
// "memory", "file", "postgres" or "mongodb".
type StorageConfig struct {
	Backend  string         `yaml:"backend"`
	Dir      string         `yaml:"dir"`
	Postgres DatabaseConfig `yaml:"postgres"`
	Mongo    MongoConfig    `yaml:"mongo"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// RedisConfig is optional; an empty Addr disables the flight cache.
type RedisConfig struct {
	Addr            string `yaml:"addr"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	FlightsCacheTTL int    `yaml:"flights_cache_ttl_seconds"`
}

// KafkaConfig is optional; no brokers disables event publishing.
type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingsTopic      string   `yaml:"bookings_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type SeedConfig struct {
	Disabled bool `yaml:"disabled"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "data"
	}
	if c.Redis.FlightsCacheTTL == 0 {
		c.Redis.FlightsCacheTTL = 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
