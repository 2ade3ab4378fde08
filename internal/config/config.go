package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const defaultConfigPath = "config/config.yaml"

// Поддерживаемые драйверы хранилища
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverBadger   = "badger"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		Env     string `yaml:"env"`
		Swagger bool   `yaml:"swagger"`
	} `yaml:"server"`

	Database struct {
		Driver     string `yaml:"driver"`      // mongo, postgres, mysql, sqlite, badger
		DSN        string `yaml:"url"`         // строка подключения для mongo/postgres/mysql
		Name       string `yaml:"name"`        // имя базы для mongo
		BadgerPath string `yaml:"badger_path"` // каталог для badger
		InMemory   bool   `yaml:"in_memory"`   // badger без диска
	} `yaml:"database"`

	Chat struct {
		SweepInterval           time.Duration `yaml:"sweep_interval"`
		InactivityThreshold     time.Duration `yaml:"inactivity_threshold"`
		LegacyMessageVisibility bool          `yaml:"legacy_message_visibility"`
	} `yaml:"chat"`
}

// envOverrides - переменные окружения, которые перекрывают config.yaml.
// Указатели остаются nil, если переменная не задана.
type envOverrides struct {
	ServerHost              *string        `envconfig:"SERVER_HOST"`
	ServerPort              *int           `envconfig:"SERVER_PORT"`
	ServerEnv               *string        `envconfig:"SERVER_ENV"`
	Swagger                 *bool          `envconfig:"SWAGGER_ENABLED"`
	DatabaseDriver          *string        `envconfig:"DATABASE_DRIVER"`
	DatabaseURL             *string        `envconfig:"DATABASE_URL"`
	DatabaseName            *string        `envconfig:"DATABASE_NAME"`
	BadgerPath              *string        `envconfig:"BADGER_PATH"`
	BadgerInMemory          *bool          `envconfig:"BADGER_IN_MEMORY"`
	SweepInterval           *time.Duration `envconfig:"SWEEP_INTERVAL"`
	InactivityThreshold     *time.Duration `envconfig:"INACTIVITY_THRESHOLD"`
	LegacyMessageVisibility *bool          `envconfig:"LEGACY_MESSAGE_VISIBILITY"`
}

var AppConfig *Config

// Default возвращает конфигурацию по умолчанию (значения исходного сервиса)
func Default() *Config {
	var cfg Config
	cfg.Server.Port = 5000
	cfg.Server.Env = "production"
	cfg.Database.Driver = DriverMongo
	cfg.Database.DSN = "mongodb://localhost:27017"
	cfg.Database.Name = "batepapo-uol-api"
	cfg.Database.BadgerPath = "data/badger"
	cfg.Chat.SweepInterval = 15 * time.Second
	cfg.Chat.InactivityThreshold = 10 * time.Second
	return &cfg
}

// LoadConfig читает config.yaml (если он есть), затем применяет переменные окружения
func LoadConfig() (*Config, error) {
	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if !explicit {
		configPath = defaultConfigPath
	}

	if err := loadFile(cfg, configPath); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	env.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return cfg, nil
}

func GetConfig() *Config {
	if AppConfig == nil {
		cfg, err := LoadConfig()
		if err != nil {
			panic(err)
		}
		return cfg
	}
	return AppConfig
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo, DriverPostgres, DriverMySQL, DriverSQLite:
		if c.Database.DSN == "" {
			return fmt.Errorf("database url is required for driver %q", c.Database.Driver)
		}
	case DriverBadger:
		if !c.Database.InMemory && c.Database.BadgerPath == "" {
			return errors.New("badger_path is required when in_memory is false")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Chat.SweepInterval <= 0 {
		return errors.New("chat.sweep_interval must be positive")
	}
	if c.Chat.InactivityThreshold <= 0 {
		return errors.New("chat.inactivity_threshold must be positive")
	}
	return nil
}

// Address возвращает адрес для http-сервера
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func loadFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func (e envOverrides) apply(cfg *Config) {
	if e.ServerHost != nil {
		cfg.Server.Host = *e.ServerHost
	}
	if e.ServerPort != nil {
		cfg.Server.Port = *e.ServerPort
	}
	if e.ServerEnv != nil {
		cfg.Server.Env = *e.ServerEnv
	}
	if e.Swagger != nil {
		cfg.Server.Swagger = *e.Swagger
	}
	if e.DatabaseDriver != nil {
		cfg.Database.Driver = *e.DatabaseDriver
	}
	if e.DatabaseURL != nil {
		cfg.Database.DSN = *e.DatabaseURL
	}
	if e.DatabaseName != nil {
		cfg.Database.Name = *e.DatabaseName
	}
	if e.BadgerPath != nil {
		cfg.Database.BadgerPath = *e.BadgerPath
	}
	if e.BadgerInMemory != nil {
		cfg.Database.InMemory = *e.BadgerInMemory
	}
	if e.SweepInterval != nil {
		cfg.Chat.SweepInterval = *e.SweepInterval
	}
	if e.InactivityThreshold != nil {
		cfg.Chat.InactivityThreshold = *e.InactivityThreshold
	}
	if e.LegacyMessageVisibility != nil {
		cfg.Chat.LegacyMessageVisibility = *e.LegacyMessageVisibility
	}
}
