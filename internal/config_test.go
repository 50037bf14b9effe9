package internal

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.yaml", `
period: years
anchors:
  item: Mortgage
palette:
  - "#112233"
  - "#AABBCC"
exclude:
  - "^test"
  - "coffee"
display_currency: USD
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	period, err := cfg.PeriodUnit()
	if err != nil || period != UnitYears {
		t.Errorf("PeriodUnit() = %q, %v; want years", period, err)
	}
	if cfg.Anchors.Item != "Mortgage" {
		t.Errorf("item anchor = %q, want Mortgage", cfg.Anchors.Item)
	}
	if cfg.Anchors.Category != DefaultCategoryAnchor {
		t.Errorf("category anchor = %q, want default %q", cfg.Anchors.Category, DefaultCategoryAnchor)
	}
	palette := cfg.PaletteColors()
	if len(palette) != 2 || palette[1] != "#aabbcc" {
		t.Errorf("palette = %v", palette)
	}
	if cfg.DisplayCurrency != "USD" {
		t.Errorf("display currency = %q", cfg.DisplayCurrency)
	}

	tests := []struct {
		name string
		want bool
	}{
		{"Test subscription", true},
		{"Morning Coffee", true},
		{"Rent", false},
		{"Latest", false},
	}
	for _, tt := range tests {
		if got := cfg.ShouldExclude(tt.name); got != tt.want {
			t.Errorf("ShouldExclude(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.yaml", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Period != "months" || cfg.Anchors.Item != DefaultItemAnchor || cfg.DisplayCurrency != "EUR" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.PaletteColors()) != len(DefaultPalette) {
		t.Error("empty palette should fall back to the default palette")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{"bad period", "period: fortnights", "invalid period"},
		{"weeks not allowed as period", "period: weeks", "invalid period"},
		{"bad color", "palette: [\"blue\"]", "invalid palette color"},
		{"bad pattern", "exclude: [\"(\"]", "invalid exclude pattern"},
		{"unsupported display currency", "display_currency: JPY", "invalid display_currency"},
		{"bad yaml", "period: [", "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "config.yaml", tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error containing %q, got %v", tt.contains, err)
			}
		})
	}
}

func TestConfig_PeriodUnitError(t *testing.T) {
	cfg := &Config{Period: "weeks"}
	if _, err := cfg.PeriodUnit(); !errors.Is(err, ErrUnsupportedUnit) {
		t.Errorf("expected ErrUnsupportedUnit, got %v", err)
	}
}

func TestConfig_NilSafe(t *testing.T) {
	var cfg *Config
	if cfg.ShouldExclude("anything") {
		t.Error("nil config should not exclude")
	}
	if p, err := cfg.PeriodUnit(); err != nil || p != UnitMonths {
		t.Errorf("nil config period = %q, %v", p, err)
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := GenerateConfigTemplate().Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Palette) != len(DefaultPalette) || cfg.Anchors.Category != DefaultCategoryAnchor {
		t.Errorf("unexpected round-tripped config: %+v", cfg)
	}
}
