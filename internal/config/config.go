package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/viper"
	"github.com/wavythreads/wavythreads/internal/branding"
	"github.com/wavythreads/wavythreads/internal/installer"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyPackageManager = "package_manager"
	KeyInstallTimeout = "install_timeout"
	KeySkipInstall    = "skip_install"
	KeyLogToFile      = "log_to_file"
)

var defaults = map[string]string{
	KeyPackageManager: "npm",
	KeyInstallTimeout: "0s",
	KeySkipInstall:    "false",
	KeyLogToFile:      "true",
}

// Dir returns the path to the config directory. The <PREFIX>_HOME environment
// variable takes precedence over ~/.wavythreads.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Keys returns the recognized configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnown reports whether key is a recognized configuration key.
func IsKnown(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set validates and writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("unknown config key %q (known keys: %v)", key, Keys())
	}
	if err := validateValue(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func validateValue(key, value string) error {
	switch key {
	case KeyInstallTimeout:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, value, err)
		}
		if d < 0 {
			return fmt.Errorf("invalid %s %q: must not be negative", key, value)
		}
	case KeySkipInstall, KeyLogToFile:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("invalid %s %q: must be true or false", key, value)
		}
	case KeyPackageManager:
		if err := installer.CheckManager(value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return nil
}

// PackageManager returns the package manager used for dependency installs.
func PackageManager() string { return viper.GetString(KeyPackageManager) }

// InstallTimeout returns the install timeout. Zero means no timeout.
func InstallTimeout() time.Duration { return viper.GetDuration(KeyInstallTimeout) }

// SkipInstall reports whether dependency installation is skipped by default.
func SkipInstall() bool { return viper.GetBool(KeySkipInstall) }

// LogToFile reports whether the application log file is enabled.
func LogToFile() bool { return viper.GetBool(KeyLogToFile) }
