// =============================================================================
// SKUID Intake Report - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has a
// default, so the tool runs without any configuration at all:
//
//   default_input: intake.xml   # input used when no path argument is given
//   log_level: info             # debug | info | warn | error
//   log_format: text            # text | json
//   csv:
//     bom: false                # prefix a UTF-8 byte order mark
//     line_ending: crlf         # crlf | lf
//   xlsx:
//     path: ""                  # write a spreadsheet copy of the report here
//     sheet: Fields
//
// The CSV output name is fixed and is not configurable.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/skuid-intake-report/internal/logging"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// DefaultConfigFile is looked up in the working directory when no --config
// flag is given. Its absence is not an error.
const DefaultConfigFile = "intake.yaml"

// Line endings accepted by csv.line_ending.
const (
	LineEndingCRLF = "crlf"
	LineEndingLF   = "lf"
)

// Config holds the application configuration.
type Config struct {
	// DefaultInput is the input file used when no path argument is given.
	// Default: "intake.xml"
	DefaultInput string `yaml:"default_input"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log handler.
	// Valid values: "text", "json"
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// CSV controls the CSV report encoding.
	CSV CSVSettings `yaml:"csv"`

	// XLSX controls the optional spreadsheet copy of the report.
	XLSX XLSXSettings `yaml:"xlsx"`
}

// CSVSettings contains settings for writing the CSV report.
type CSVSettings struct {
	// BOM prefixes the file with a UTF-8 byte order mark, which some
	// spreadsheet tools need to detect the encoding.
	BOM bool `yaml:"bom"`

	// LineEnding is "crlf" or "lf".
	// Default: "crlf"
	LineEnding string `yaml:"line_ending"`
}

// XLSXSettings contains settings for the spreadsheet report.
type XLSXSettings struct {
	// Path is where the spreadsheet is written. Empty disables it.
	Path string `yaml:"path"`

	// Sheet is the worksheet name.
	// Default: "Fields"
	Sheet string `yaml:"sheet"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - required: Whether a missing file is an error. When false, a missing
//     file yields the defaults.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string, required bool) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) && !required {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration data, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.DefaultInput == "" {
		config.DefaultInput = "intake.xml"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = logging.FormatText
	}
	if config.CSV.LineEnding == "" {
		config.CSV.LineEnding = LineEndingCRLF
	}
	if config.XLSX.Sheet == "" {
		config.XLSX.Sheet = "Fields"
	}
}

// validate rejects values the rest of the program cannot honour.
func validate(config *Config) error {
	if _, err := logging.ParseLevel(config.LogLevel); err != nil {
		return err
	}
	if err := logging.CheckFormat(config.LogFormat); err != nil {
		return err
	}

	switch config.CSV.LineEnding {
	case LineEndingCRLF, LineEndingLF:
	default:
		return fmt.Errorf("unknown csv.line_ending %q", config.CSV.LineEnding)
	}

	// Excel limits sheet names to 31 characters.
	if len([]rune(config.XLSX.Sheet)) > 31 {
		return fmt.Errorf("xlsx.sheet %q is longer than 31 characters", config.XLSX.Sheet)
	}

	return nil
}
