package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Storage struct {
		Driver string `yaml:"driver" env:"STORAGE_DRIVER"`
		Path   string `yaml:"path" env:"STORAGE_PATH"`

		Host     string `yaml:"host" env:"DB_HOST"`
		Port     string `yaml:"port" env:"DB_PORT"`
		User     string `yaml:"user" env:"DB_USER"`
		Password string `yaml:"password" env:"DB_PASSWORD"`
		DBName   string `yaml:"dbname" env:"DB_NAME"`
		SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`

		MaxIdleConns int `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns int `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	} `yaml:"storage"`

	Admin struct {
		ID       string `yaml:"id" env:"ADMIN_ID"`
		Password string `yaml:"password" env:"ADMIN_PASSWORD"`
	} `yaml:"admin"`

	QR struct {
		Size int `yaml:"size" env:"QR_SIZE"`
	} `yaml:"qr"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load a local .env file first so its values participate in the
	// env override pass. Missing file is fine.
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Storage defaults: embedded store in the user's data directory
	config.Storage.Driver = "badger"
	config.Storage.Path = defaultDataDir()

	config.Storage.Host = "localhost"
	config.Storage.Port = "5432"
	config.Storage.User = "postgres"
	config.Storage.Password = "postgres"
	config.Storage.DBName = "exitpass"
	config.Storage.SSLMode = "disable"
	config.Storage.MaxIdleConns = 2
	config.Storage.MaxOpenConns = 5

	// Placeholder credential pair, matching the demo deployment
	config.Admin.ID = "admin123"
	config.Admin.Password = "admin123"

	config.QR.Size = 300

	config.Logging.Level = "info"
	config.Logging.Format = "console"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Storage.Driver {
	case "badger", "memory":
	case "postgres":
		if config.Storage.Host == "" {
			return fmt.Errorf("storage host is required for the postgres driver")
		}
		if config.Storage.DBName == "" {
			return fmt.Errorf("storage dbname is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.Storage.Driver == "badger" && config.Storage.Path == "" {
		return fmt.Errorf("storage path is required for the badger driver")
	}

	if config.Admin.ID == "" || config.Admin.Password == "" {
		return fmt.Errorf("admin credentials are required")
	}

	if config.QR.Size <= 0 {
		return fmt.Errorf("qr size must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Storage.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Storage.User,
		c.Storage.Password,
		c.Storage.Host,
		c.Storage.Port,
		c.Storage.DBName,
		sslMode,
	)
}

// defaultDataDir resolves the embedded store location, preferring the
// OS user config dir and falling back to a dotdir in $HOME.
func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "exitpass"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".exitpass"
	}
	return home + string(os.PathSeparator) + ".exitpass"
}
