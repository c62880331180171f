// Package config resolves server settings from flags, the environment, an
// optional .env file and an optional unity-mcp.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyProjectPath = "project_path"
	KeyLogLevel    = "log_level"
)

// FileName is the config file base name looked up in the working directory.
const FileName = "unity-mcp"

// Flag names bound to configuration keys.
const (
	FlagProject  = "project"
	FlagLogLevel = "log-level"
)

// ErrProjectRootRequired is returned when no Unity project path is configured.
var ErrProjectRootRequired = errors.New("no Unity project path configured (pass a path, --project, or set UNITY_PROJECT_PATH)")

// Config holds resolved settings.
type Config struct {
	ProjectPath string
	LogLevel    string
	// File is the config file that was read, if any.
	File string
}

// Load resolves configuration for a process started in dir. Precedence is
// flags, then environment (including dir/.env), then dir/unity-mcp.yaml.
// flags may be nil.
func Load(dir string, flags *pflag.FlagSet) (*Config, error) {
	// .env never overrides variables already set in the environment
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	v := viper.New()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault(KeyLogLevel, "info")
	if err := v.BindEnv(KeyProjectPath, "UNITY_PROJECT_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}
	if err := v.BindEnv(KeyLogLevel, "UNITY_MCP_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if flags != nil {
		for key, name := range map[string]string{KeyProjectPath: FlagProject, KeyLogLevel: FlagLogLevel} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind --%s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s.yaml: %w", FileName, err)
		}
	}

	return &Config{
		ProjectPath: v.GetString(KeyProjectPath),
		LogLevel:    v.GetString(KeyLogLevel),
		File:        v.ConfigFileUsed(),
	}, nil
}

// ProjectRoot returns the absolute project path, which must be an existing
// directory.
func (c *Config) ProjectRoot() (string, error) {
	if c.ProjectPath == "" {
		return "", ErrProjectRootRequired
	}
	root, err := filepath.Abs(c.ProjectPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("project path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project path %s is not a directory", root)
	}
	return root, nil
}
