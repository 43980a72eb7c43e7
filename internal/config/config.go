// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format                  string `yaml:"format"`
		Verbose                 bool   `yaml:"verbose"`
		Debug                   bool   `yaml:"debug"`
		NoColor                 bool   `yaml:"no_color"`
		StrictValidation        bool   `yaml:"strict_validation"`
		EnableOCR               bool   `yaml:"enable_ocr"`
		EnableTemplateMatching  bool   `yaml:"enable_template_matching"`
		EnableEntityRecognition bool   `yaml:"enable_entity_recognition"`
	} `yaml:"defaults"`

	// Extraction tunables
	Extraction struct {
		LumpSumDivisorDays float64 `yaml:"lump_sum_divisor_days"`
		MonthlyDivisorDays float64 `yaml:"monthly_divisor_days"`
	} `yaml:"extraction"`

	// Validation tunables
	Validation struct {
		DeviationTolerance float64 `yaml:"deviation_tolerance"`
	} `yaml:"validation"`

	// Profiles for different processing scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a processing profile with specific settings
type Profile struct {
	Format                  string  `yaml:"format"`
	Verbose                 bool    `yaml:"verbose"`
	Debug                   bool    `yaml:"debug"`
	NoColor                 bool    `yaml:"no_color"`
	StrictValidation        bool    `yaml:"strict_validation"`
	EnableOCR               bool    `yaml:"enable_ocr"`
	EnableTemplateMatching  bool    `yaml:"enable_template_matching"`
	EnableEntityRecognition bool    `yaml:"enable_entity_recognition"`
	DeviationTolerance      float64 `yaml:"deviation_tolerance"`
	Description             string  `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false
	config.Defaults.StrictValidation = false
	config.Defaults.EnableOCR = true
	config.Defaults.EnableTemplateMatching = true
	config.Defaults.EnableEntityRecognition = true

	config.Extraction.LumpSumDivisorDays = 180
	config.Extraction.MonthlyDivisorDays = 30
	config.Validation.DeviationTolerance = 50

	// Add default batch profile for unattended bulk runs
	config.Profiles["batch"] = Profile{
		Format:                  "json",
		Verbose:                 false,
		Debug:                   false,
		NoColor:                 true,
		StrictValidation:        true,
		EnableOCR:               true,
		EnableTemplateMatching:  true,
		EnableEntityRecognition: true,
		DeviationTolerance:      50,
		Description:             "Machine-readable output with strict validation for bulk processing",
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Store default values before unmarshaling
	defaultEnableOCR := config.Defaults.EnableOCR
	defaultEnableTemplates := config.Defaults.EnableTemplateMatching
	defaultEnableEntities := config.Defaults.EnableEntityRecognition
	defaultLumpSumDivisor := config.Extraction.LumpSumDivisorDays
	defaultMonthlyDivisor := config.Extraction.MonthlyDivisorDays
	defaultTolerance := config.Validation.DeviationTolerance

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Restore defaults if not explicitly set in config file
	// This handles the case where YAML unmarshaling zeroes fields
	// when they're not present in the config file
	if !containsField(data, "defaults", "enable_ocr") {
		config.Defaults.EnableOCR = defaultEnableOCR
	}
	if !containsField(data, "defaults", "enable_template_matching") {
		config.Defaults.EnableTemplateMatching = defaultEnableTemplates
	}
	if !containsField(data, "defaults", "enable_entity_recognition") {
		config.Defaults.EnableEntityRecognition = defaultEnableEntities
	}
	if !containsField(data, "extraction", "lump_sum_divisor_days") {
		config.Extraction.LumpSumDivisorDays = defaultLumpSumDivisor
	}
	if !containsField(data, "extraction", "monthly_divisor_days") {
		config.Extraction.MonthlyDivisorDays = defaultMonthlyDivisor
	}
	if !containsField(data, "validation", "deviation_tolerance") {
		config.Validation.DeviationTolerance = defaultTolerance
	}

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration values
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if config.Extraction.LumpSumDivisorDays <= 0 {
		return fmt.Errorf("extraction.lump_sum_divisor_days must be positive, got %v", config.Extraction.LumpSumDivisorDays)
	}
	if config.Extraction.MonthlyDivisorDays <= 0 {
		return fmt.Errorf("extraction.monthly_divisor_days must be positive, got %v", config.Extraction.MonthlyDivisorDays)
	}
	if config.Validation.DeviationTolerance < 0 {
		return fmt.Errorf("validation.deviation_tolerance must be non-negative, got %v", config.Validation.DeviationTolerance)
	}

	return nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize config.yaml
	if fileExists("config.yaml") {
		return "config.yaml"
	}
	if fileExists("judgment-extract.yaml") {
		return "judgment-extract.yaml"
	}
	if fileExists("judgment-extract.yml") {
		return "judgment-extract.yml"
	}

	// Check for project-specific config in current directory
	if fileExists(".judgment-extract.yaml") {
		return ".judgment-extract.yaml"
	}
	if fileExists(".judgment-extract.yml") {
		return ".judgment-extract.yml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	// Check XDG config directory
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	xdgConfigFile := filepath.Join(xdgConfig, "judgment-extract", "config.yaml")
	if fileExists(xdgConfigFile) {
		return xdgConfigFile
	}
	xdgConfigFile = filepath.Join(xdgConfig, "judgment-extract", "config.yml")
	if fileExists(xdgConfigFile) {
		return xdgConfigFile
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns a list of available profile names
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// containsField checks if a nested field exists in the YAML data
func containsField(data []byte, path ...string) bool {
	var yamlData map[string]interface{}
	err := yaml.Unmarshal(data, &yamlData)
	if err != nil {
		return false
	}

	current := yamlData
	for i, key := range path {
		if i == len(path)-1 {
			// Last key - check if it exists
			_, exists := current[key]
			return exists
		}
		// Intermediate key - navigate deeper
		if next, ok := current[key].(map[string]interface{}); ok {
			current = next
		} else {
			return false
		}
	}
	return false
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults — callers should not crash on a missing/bad config file.
		cfg, _ = LoadConfig("")
	}
	return cfg
}
