package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/angas/solara-go/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int16
	// If not assigned, the server will serve embedded files.
	// If assigned, the server will serve files from the directory,
	// that must contain a "static" and "templates" directory.
	// This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
	// Secret for the flash message cookie, a random key is used when missing
	SessionKey *string `mapstructure:"session_key"`
	// Upload limit in megabytes, default: 10
	MaxUploadMb *int `mapstructure:"max_upload_mb"`
}

func (a AppConfigApi) GetAddress() string {
	return fmt.Sprintf("%s:%d", a.Address, a.GetPort())
}

func (a AppConfigApi) GetPort() int16 {
	if a.Port == 0 {
		return 8080
	}
	return a.Port
}

func (a AppConfigApi) GetMaxUploadBytes() int64 {
	if a.MaxUploadMb == nil || *a.MaxUploadMb < 1 {
		return 10 << 20
	}
	return int64(*a.MaxUploadMb) << 20
}

type AppConfigDatabase struct {
	Path string
	// How many days daily backup files should be stored before they gets deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetPath() string {
	if d.Path == "" {
		return "solara.db"
	}
	return d.Path
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 30
	}
	return *d.BackupRetentionDays
}

type AppConfigPrediction struct {
	// Fixed random seed, gives the same prediction for the same data and date
	Seed *uint64 `mapstructure:"seed"`
	// Accept prediction dates before today, default: false
	AllowPastDates bool `mapstructure:"allow_past_dates"`
	// Number of days in the generated sample dataset, default: 30
	SampleDays *int `mapstructure:"sample_days"`
	// First day of the sample dataset as YYYY-MM-DD, default: 2024-01-01
	SampleStart *string `mapstructure:"sample_start"`
}

func (p AppConfigPrediction) GetSampleDays() int {
	if p.SampleDays == nil || *p.SampleDays < 1 {
		return 30
	}
	return *p.SampleDays
}

func (p AppConfigPrediction) GetSampleStart() time.Time {
	def := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if p.SampleStart == nil {
		return def
	}
	t, err := time.Parse(time.DateOnly, *p.SampleStart)
	if err != nil {
		return def
	}
	return t
}

type AppConfigMaintenance struct {
	// Cron spec for backup and log trimming, default: "30 2 * * *"
	RunAt *string `mapstructure:"run_at"`
}

func (m AppConfigMaintenance) GetRunAt() string {
	if m.RunAt == nil || *m.RunAt == "" {
		return "30 2 * * *"
	}
	return *m.RunAt
}

type AppConfigGui struct {
	// Timezone for displaying times in the GUI, default: America/Lima
	Timezone *string `mapstructure:"timezone"`
}

func (g AppConfigGui) GetTimezone() string {
	if g.Timezone == nil {
		return "America/Lima"
	}
	return *g.Timezone
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	return logging.AttrFormatFromString(l.DbAttrsFormat)
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api         AppConfigApi
	Database    AppConfigDatabase
	Prediction  AppConfigPrediction  `mapstructure:"prediction"`
	Maintenance AppConfigMaintenance `mapstructure:"maintenance"`
	Gui         AppConfigGui         `mapstructure:"gui"`
	Logging     AppConfigLogging     `mapstructure:"logging"`
}

// Load reads the YAML config, either from path or config/config.yaml.
// A .env file in the working directory is loaded first and environment
// variables override file values, e.g. API_PORT for api.port.
func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("unable to read .env file: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Keys must be known to viper for env overrides to reach Unmarshal
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("unable to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	var c AppConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}

var envKeys = []string{
	"api.address", "api.port", "api.www_dir", "api.session_key", "api.max_upload_mb",
	"database.path", "database.backup_retention_days",
	"prediction.seed", "prediction.allow_past_dates", "prediction.sample_days", "prediction.sample_start",
	"maintenance.run_at",
	"gui.timezone",
	"logging.db_level", "logging.db_attrs_format", "logging.db_max_entries", "logging.console_level",
}
