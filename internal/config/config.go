// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads usersession settings from defaults, YAML files,
// USERSESSION_* environment variables and cobra flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = "usersession"
	envPrefix  = "usersession"
)

// Config is the application configuration.
type Config struct {
	Language string      `mapstructure:"language" yaml:"language"`
	Log      LogConfig   `mapstructure:"log" yaml:"log"`
	Login    LoginConfig `mapstructure:"login" yaml:"login"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// LoginConfig only affects presentation; nothing here logs a user in.
type LoginConfig struct {
	// DefaultUser prefills the TUI login prompt.
	DefaultUser string `mapstructure:"default_user" yaml:"default_user"`
}

// Defaults returns the built-in values keyed the way viper expects them.
func Defaults() map[string]any {
	return map[string]any{
		"language":           "en",
		"log.level":          "info",
		"login.default_user": "",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Usersession")
		default:
			configDir = "/etc/usersession"
		}
	} else {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(userDir, "usersession")
	}

	return filepath.Join(configDir, configName+".yaml"), nil
}

// LoadConfig resolves a T from defaults, config files, the environment and
// the flags of cmd. explicitPath, when set, must point to a readable file.
// The returned string is the config file that was read, or "" when none was
// found.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, string, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")

	if explicitPath != nil && *explicitPath != "" {
		v.SetConfigFile(*explicitPath)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, "", fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, "", err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, "", fmt.Errorf("decoding config: %w", err)
	}

	return c, v.ConfigFileUsed(), nil
}

// WriteConfigFile writes c as YAML to the user or system config path,
// creating the directory if needed.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}

	return path, nil
}
