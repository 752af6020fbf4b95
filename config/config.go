package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Account       AccountConfig       `toml:"account"`
	Options       OptionsConfig       `toml:"options"`
	Converter     ConverterConfig     `toml:"converter"`
	API           APIConfig           `toml:"api"`
	Publisher     PublisherConfig     `toml:"publisher"`
	Schedule      ScheduleConfig      `toml:"schedule"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type AccountConfig struct {
	TargetProfile string `toml:"target_profile"`
	UserAgent     string `toml:"user_agent"`
}

type OptionsConfig struct {
	SaveLocation string `toml:"save_location"`
	TempMediaDir string `toml:"temp_media_dir"` // Optional, defaults to <save_location>/temp_media
}

type ConverterConfig struct {
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type APIConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// PublisherConfig describes the external publish hook. Command is run with
// the rewritten content as its first argument followed by the local media
// paths; exit status 0 counts as a confirmed publish.
type PublisherConfig struct {
	Command string `toml:"command"`
}

type ScheduleConfig struct {
	IntervalMinutes int `toml:"interval_minutes"`
}

type NotificationsConfig struct {
	Enabled        bool   `toml:"enabled"`
	SystemNotify   bool   `toml:"system_notify"`
	DiscordWebhook string `toml:"discord_webhook"`
}

func GetConfigPath() string {
	currentDirConfig := "config.toml"
	if _, err := os.Stat(currentDirConfig); err == nil {
		return currentDirConfig
	}

	var configDir string
	var err error

	if runtime.GOOS == "darwin" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		configDir = filepath.Join(homeDir, ".config")
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			log.Fatal(err)
		}
	}

	return filepath.Join(configDir, "threads-affiliate", "config.toml")
}

// EnsureConfigExists writes a default config file when none is present yet.
func EnsureConfigExists(configPath string) error {
	if _, err := os.Stat(filepath.Dir(configPath)); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(configPath), os.ModePerm); err != nil {
			return err
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return SaveConfig(configPath, CreateDefaultConfig())
	}

	return nil
}

func CreateDefaultConfig() *Config {
	saveLocation := "data"
	if homeDir, err := os.UserHomeDir(); err == nil {
		saveLocation = filepath.Join(homeDir, "threads-affiliate")
	}

	return &Config{
		Account: AccountConfig{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		},
		Options: OptionsConfig{
			SaveLocation: saveLocation,
		},
		Converter: ConverterConfig{
			Endpoint:       "http://localhost:8000",
			TimeoutSeconds: 120,
		},
		API: APIConfig{
			ListenAddr: ":8000",
		},
		Schedule: ScheduleConfig{
			IntervalMinutes: 30,
		},
		Notifications: NotificationsConfig{
			Enabled:      true,
			SystemNotify: true,
		},
	}
}

func SaveConfig(configPath string, cfg *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// LoadConfig reads the TOML config and applies .env / environment overrides
// for values that are deployment secrets rather than user preferences.
func LoadConfig(configPath string) (*Config, error) {
	// Missing .env is fine, only load it opportunistically
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if endpoint := os.Getenv("CONVERTER_ENDPOINT"); endpoint != "" {
		cfg.Converter.Endpoint = endpoint
	}
	if webhook := os.Getenv("DISCORD_WEBHOOK"); webhook != "" {
		cfg.Notifications.DiscordWebhook = webhook
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Options.SaveLocation == "" {
		cfg.Options.SaveLocation = CreateDefaultConfig().Options.SaveLocation
	}
	if cfg.Options.TempMediaDir == "" {
		cfg.Options.TempMediaDir = filepath.Join(cfg.Options.SaveLocation, "temp_media")
	}
	if cfg.Converter.TimeoutSeconds <= 0 {
		cfg.Converter.TimeoutSeconds = 120
	}
	if cfg.API.ListenAddr == "" {
		cfg.API.ListenAddr = ":8000"
	}
	if cfg.Schedule.IntervalMinutes <= 0 {
		cfg.Schedule.IntervalMinutes = 30
	}
}

// ConverterTimeout returns the configured conversion timeout as a duration.
func (c *Config) ConverterTimeout() time.Duration {
	return time.Duration(c.Converter.TimeoutSeconds) * time.Second
}
