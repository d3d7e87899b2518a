package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gpaccess/backend/internal/pkg/logger"
	"github.com/gpaccess/backend/internal/utils"
)

type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type SeedConfig struct {
	Dir string `yaml:"dir"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Seed     SeedConfig     `yaml:"seed"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port: "5000",
			CORSOrigins: []string{
				"http://127.0.0.1:8081",
				"http://localhost:8081",
			},
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "gpaccess",
			SSLMode: "disable",
		},
		Seed: SeedConfig{Dir: "mock_data"},
	}
}

// Load reads the YAML config file when present and then applies environment
// variable overrides on top, so a container deployment needs no file at all.
func Load(path string, log *logger.Logger) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			if log != nil {
				log.Debug("Config file not found, using defaults", "path", path)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Server.Port = utils.GetEnv("PORT", cfg.Server.Port, log)
	cfg.Database.Host = utils.GetEnv("POSTGRES_HOST", cfg.Database.Host, log)
	cfg.Database.Port = utils.GetEnv("POSTGRES_PORT", cfg.Database.Port, log)
	cfg.Database.User = utils.GetEnv("POSTGRES_USER", cfg.Database.User, log)
	cfg.Database.Password = utils.GetEnv("POSTGRES_PASSWORD", cfg.Database.Password, log)
	cfg.Database.Name = utils.GetEnv("POSTGRES_NAME", cfg.Database.Name, log)
	cfg.Database.SSLMode = utils.GetEnv("POSTGRES_SSLMODE", cfg.Database.SSLMode, log)
	cfg.Seed.Dir = utils.GetEnv("MOCK_DATA_DIR", cfg.Seed.Dir, log)

	return cfg, nil
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
}
