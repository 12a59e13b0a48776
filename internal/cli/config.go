package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	mlerrors "github.com/orizon-lang/minilang/internal/errors"
)

const (
	// EnvConfig names the environment variable holding a config path.
	EnvConfig = "MINILANG_CONFIG"
	// DefaultConfigFile is picked up from the working directory if present.
	DefaultConfigFile = "minilang.toml"

	DefaultMaxAssignmentDepth = 4096
	DefaultWatchDebounce      = 200 * time.Millisecond
)

// Duration wraps time.Duration for config files ("250ms", "1s").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config represents common configuration for CLI tools
type Config struct {
	Verbose            bool      `toml:"verbose" yaml:"verbose" json:"verbose"`
	Debug              bool      `toml:"debug" yaml:"debug" json:"debug"`
	Color              ColorMode `toml:"color" yaml:"color" json:"color"`
	MaxAssignmentDepth int       `toml:"max_assignment_depth" yaml:"max_assignment_depth" json:"max_assignment_depth"`
	MaxErrors          int       `toml:"max_errors" yaml:"max_errors" json:"max_errors"`
	LanguageVersion    string    `toml:"language_version" yaml:"language_version" json:"language_version"`
	WatchDebounce      Duration  `toml:"watch_debounce" yaml:"watch_debounce" json:"watch_debounce"`

	// ConfigFile is the file the config was loaded from, empty for defaults.
	ConfigFile string `toml:"-" yaml:"-" json:"-"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.MaxAssignmentDepth == 0 {
		c.MaxAssignmentDepth = DefaultMaxAssignmentDepth
	}
	if c.WatchDebounce.Duration == 0 {
		c.WatchDebounce.Duration = DefaultWatchDebounce
	}
}

// Validate checks field ranges and the language version constraint.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return mlerrors.InvalidConfig(c.ConfigFile, "color", c.Color)
	}
	if c.MaxAssignmentDepth < 0 {
		return mlerrors.InvalidConfig(c.ConfigFile, "max_assignment_depth", c.MaxAssignmentDepth)
	}
	if c.MaxErrors < 0 {
		return mlerrors.InvalidConfig(c.ConfigFile, "max_errors", c.MaxErrors)
	}
	if c.WatchDebounce.Duration < 0 {
		return mlerrors.InvalidConfig(c.ConfigFile, "watch_debounce", c.WatchDebounce)
	}
	return CheckLanguageVersion(c.LanguageVersion)
}

// CheckLanguageVersion reports whether LanguageVersion satisfies the
// semver constraint. An empty constraint accepts every version.
func CheckLanguageVersion(constraint string) error {
	if strings.TrimSpace(constraint) == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		e := mlerrors.InvalidConfig("", "language_version", constraint)
		e.Err = err
		return e
	}

	if !c.Check(semver.MustParse(LanguageVersion)) {
		return mlerrors.UnsupportedVersion(constraint, LanguageVersion)
	}
	return nil
}

// Format is a config file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format name ("toml", "yaml", "yml", "json") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, mlerrors.InvalidConfig("", "format", name)
	}
}

// DetectFormat picks the format from a file extension.
func DetectFormat(path string) (Format, error) {
	ext := filepath.Ext(path)
	format, err := ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil {
		return 0, mlerrors.InvalidConfig(path, "format", ext)
	}
	return format, nil
}

// DiscoverConfigPath returns the config file to load: the explicit path if
// given, then $MINILANG_CONFIG, then ./minilang.toml when it exists.
// An empty result means defaults.
func DiscoverConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return os.ExpandEnv(env)
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// LoadConfig loads configuration from file. An empty path yields defaults.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, mlerrors.ReadFailed(configPath, err)
	}

	config, err := ParseConfig(data, configPath)
	if err != nil {
		return nil, err
	}
	return config, nil
}

// ParseConfig decodes data in the format implied by path's extension,
// applies defaults and validates the result.
func ParseConfig(data []byte, path string) (*Config, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, config)
	case FormatYAML:
		err = yaml.Unmarshal(data, config)
	case FormatJSON:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	config.ConfigFile = path
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Encode renders the config in the given format.
func (c *Config) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, fmt.Errorf("failed to marshal config: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// SaveConfig saves configuration to file, refusing to overwrite an
// existing one.
func (c *Config) SaveConfig(configPath string) error {
	format, err := DetectFormat(configPath)
	if err != nil {
		return err
	}

	data, err := c.Encode(format)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(configPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("config file %s already exists", configPath)
		}
		return fmt.Errorf("failed to write config file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
