package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Anchors names the rows after which the TOTAL bar is inserted
type Anchors struct {
	Item     string `yaml:"item,omitempty"`
	Category string `yaml:"category,omitempty"`
}

type Config struct {
	// Period is the normalization period of the charts: months or years
	Period string `yaml:"period,omitempty"`

	Anchors Anchors `yaml:"anchors,omitempty"`

	// Palette overrides the category colors (hex strings, cycled in order)
	Palette []string `yaml:"palette,omitempty"`

	// Exclude is a list of regex patterns; matching expense names are left out
	Exclude []string `yaml:"exclude,omitempty"`

	// DisplayCurrency is the currency the table's EUR columns are converted to.
	// It must be in the rate table.
	DisplayCurrency string `yaml:"display_currency,omitempty"`

	// compiled exclude patterns (not serialized)
	excludePatterns []*regexp.Regexp `yaml:"-"`
}

// DefaultConfigPath returns the default config file path (~/.expense-waterfall/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".expense-waterfall", "config.yaml")
}

// NewDefaultConfig creates a config with every field at its default.
// Use this when no config file exists.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()

	if _, err := cfg.PeriodUnit(); err != nil {
		return nil, fmt.Errorf("invalid period: %w", err)
	}

	cfg.DisplayCurrency = strings.ToUpper(strings.TrimSpace(cfg.DisplayCurrency))
	if _, err := FXRate(BaseCurrency, cfg.DisplayCurrency); err != nil {
		return nil, fmt.Errorf("invalid display_currency: %w", err)
	}

	for _, c := range cfg.Palette {
		if !isHexColor(c) {
			return nil, fmt.Errorf("invalid palette color %q (expected #rrggbb)", c)
		}
	}

	// Compile exclude patterns
	for _, pattern := range cfg.Exclude {
		re, err := regexp.Compile("(?i)" + pattern) // case-insensitive
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		cfg.excludePatterns = append(cfg.excludePatterns, re)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Period == "" {
		c.Period = string(UnitMonths)
	}
	if c.Anchors.Item == "" {
		c.Anchors.Item = DefaultItemAnchor
	}
	if c.Anchors.Category == "" {
		c.Anchors.Category = DefaultCategoryAnchor
	}
	if c.DisplayCurrency == "" {
		c.DisplayCurrency = BaseCurrency
	}
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// PeriodUnit returns the chart period; only months and years are allowed
func (c *Config) PeriodUnit() (RepeatUnit, error) {
	if c == nil || c.Period == "" {
		return UnitMonths, nil
	}
	u, err := ParseRepeatUnit(c.Period)
	if err != nil {
		return "", err
	}
	if u != UnitMonths && u != UnitYears {
		return "", &UnitError{Unit: c.Period}
	}
	return u, nil
}

// PaletteColors returns the configured palette, or DefaultPalette
func (c *Config) PaletteColors() []Color {
	if c == nil || len(c.Palette) == 0 {
		return DefaultPalette
	}
	out := make([]Color, len(c.Palette))
	for i, p := range c.Palette {
		out[i] = Color(strings.ToLower(p))
	}
	return out
}

// ShouldExclude returns true if the expense name matches any exclude pattern
func (c *Config) ShouldExclude(name string) bool {
	if c == nil {
		return false
	}
	for _, re := range c.excludePatterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// GenerateConfigTemplate creates a config with defaults and the default palette spelled out
func GenerateConfigTemplate() *Config {
	cfg := NewDefaultConfig()
	for _, c := range DefaultPalette {
		cfg.Palette = append(cfg.Palette, string(c))
	}
	cfg.Exclude = []string{}
	return cfg
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func isHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}
