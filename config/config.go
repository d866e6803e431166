package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Stock values applied before a configuration file is parsed.
const (
	DefaultRepository = "https://github.com/docker-library/official-images.git"
	DefaultBranch     = "master"
	DefaultNamespace  = "library"
)

// Config is the top-level configuration for stackbrew.
type Config struct {
	Repository string `yaml:"repository"` // Manifest library source (git URL or local path)
	Branch     string `yaml:"branch"`     // Branch checked out on remote manifest sources
	Namespace  string `yaml:"namespace"`  // Image name prefix, e.g. "library"
	Registry   string `yaml:"registry"`   // Optional registry host prepended when pushing
	Push       bool   `yaml:"push"`       // Push images after building
	Prefill    bool   `yaml:"prefill"`    // Pull public images first to warm the layer cache
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Default returns a configuration preloaded with the stock values.
func Default() *Config {
	return &Config{
		Repository: DefaultRepository,
		Branch:     DefaultBranch,
		Namespace:  DefaultNamespace,
		Registry:   "",
		Push:       false,
		Prefill:    true,
	}
}

// Load parses a configuration file over the defaults, expanding environment
// variables in string values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	// Expand ${ENV_VAR} references in string values
	cfg.Repository = resolveValue(cfg.Repository)
	cfg.Branch = resolveValue(cfg.Branch)
	cfg.Namespace = resolveValue(cfg.Namespace)
	cfg.Registry = resolveValue(cfg.Registry)

	if validateErr := validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".stackbrew.yaml",
		".stackbrew.yml",
		"stackbrew.yaml",
		"stackbrew.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveValue expands environment variable references (${VAR}).
func resolveValue(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// validate checks for required configuration values.
func validate(cfg *Config) error {
	if cfg.Repository == "" {
		return errors.New("repository is required (set a git URL or a local path)")
	}

	return nil
}
