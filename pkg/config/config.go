// Package config loads compiler-wide knobs from a TOML file, grounded on
// xplshn-gbc/pkg/config's feature/warning-map shape and
// vovakirdan-surge/internal/project's toml.DecodeFile loading pattern.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// FeatureInfo describes one optional language feature.
type FeatureInfo struct {
	Name        string
	Enabled     bool
	Description string
}

// WarningInfo describes one diagnostic warning class.
type WarningInfo struct {
	Name        string
	Enabled     bool
	Description string
}

// Config is the full set of compiler knobs: MaxSetSize and WordSize feed
// pkg/sema, pkg/types and pkg/irgen. StackAlignment and the
// Features/Warnings maps (the teacher's config.Features/Warnings shape)
// are loaded and can be queried through FeatureEnabled/WarningEnabled,
// but no analysis or lowering pass in this module reads them.
type Config struct {
	Features map[string]FeatureInfo
	Warnings map[string]WarningInfo

	MaxSetSize     int
	WordSize       int
	StackAlignment int
}

type fileFormat struct {
	MaxSetSize     int             `toml:"max_set_size"`
	WordSize       int             `toml:"word_size"`
	StackAlignment int             `toml:"stack_alignment"`
	Features       map[string]bool `toml:"features"`
	Warnings       map[string]bool `toml:"warnings"`
}

// Default returns a Config with the spec's built-in defaults
// (MaxSetSize = 512 per spec.md §3, a 64-bit word size, natural 8-byte
// stack alignment) and every known feature/warning enabled.
func Default() *Config {
	return &Config{
		Features:       defaultFeatures(),
		Warnings:       defaultWarnings(),
		MaxSetSize:     512,
		WordSize:       8,
		StackAlignment: 8,
	}
}

func defaultFeatures() map[string]FeatureInfo {
	return map[string]FeatureInfo{
		"classes":   {"classes", true, "Allow class declarations with inheritance"},
		"funcptrs":  {"funcptrs", true, "Allow procedural (function-pointer) types"},
		"sets":      {"sets", true, "Allow set-of-range types and set literals"},
	}
}

func defaultWarnings() map[string]WarningInfo {
	return map[string]WarningInfo{
		"range-narrowing":  {"range-narrowing", true, "Integer literal assigned to a narrower subrange"},
		"unused-forward":   {"unused-forward", true, "Forward-declared pointer type never resolved"},
		"shadowed-name":    {"shadowed-name", false, "Inner-scope declaration shadows an outer one"},
	}
}

// Load reads path as TOML and overlays it onto Default(). Sections and
// keys the file omits keep their default value.
func Load(path string) (*Config, error) {
	cfg := Default()
	var f fileFormat
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if meta.IsDefined("max_set_size") {
		cfg.MaxSetSize = f.MaxSetSize
	}
	if meta.IsDefined("word_size") {
		cfg.WordSize = f.WordSize
	}
	if meta.IsDefined("stack_alignment") {
		cfg.StackAlignment = f.StackAlignment
	}
	for name, enabled := range f.Features {
		info, ok := cfg.Features[name]
		if !ok {
			info = FeatureInfo{Name: name}
		}
		info.Enabled = enabled
		cfg.Features[name] = info
	}
	for name, enabled := range f.Warnings {
		info, ok := cfg.Warnings[name]
		if !ok {
			info = WarningInfo{Name: name}
		}
		info.Enabled = enabled
		cfg.Warnings[name] = info
	}
	return cfg, nil
}

// FeatureEnabled reports whether the named feature is on.
func (c *Config) FeatureEnabled(name string) bool {
	return c.Features[name].Enabled
}

// WarningEnabled reports whether the named warning class is on.
func (c *Config) WarningEnabled(name string) bool {
	return c.Warnings[name].Enabled
}
