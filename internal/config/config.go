// Package config loads and validates the proofing configuration.
//
// The surface is deliberately small: which preposition pairs are checked,
// which document parts are searched, and what color flags mismatches. The
// rule tables themselves are fixed and not configurable.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/predlog/internal/document"
	"github.com/roach88/predlog/internal/rules"
	"github.com/roach88/predlog/internal/session"
)

// Config is the YAML-facing configuration.
type Config struct {
	// Pairs lists the enabled preposition pairs: "sz", "kh".
	Pairs []string `yaml:"pairs"`

	// Scope is "body" or "full" (body plus headers, footers, tables).
	// "body+headers+footers+tables" is accepted as a spelling of "full".
	Scope string `yaml:"scope"`

	// Highlight is the flag color applied to mismatches.
	Highlight string `yaml:"highlight"`
}

// Default returns the configuration used when no file is given:
// s/z only, body only, yellow flags.
func Default() Config {
	return Config{
		Pairs:     []string{"sz"},
		Scope:     "body",
		Highlight: "yellow",
	}
}

// Load reads a YAML config file, fills unset fields with defaults, and
// validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize canonicalizes field spellings (lowercase, trimmed, scope
// aliases) and fills unset fields with defaults. Idempotent; callers that
// override fields after Load must re-run it before Validate.
func (c *Config) Normalize() {
	for i, p := range c.Pairs {
		c.Pairs[i] = strings.ToLower(strings.TrimSpace(p))
	}
	c.Scope = strings.ToLower(strings.TrimSpace(c.Scope))
	if c.Scope == "body+headers+footers+tables" {
		c.Scope = "full"
	}
	if c.Scope == "" {
		c.Scope = "body"
	}
	if len(c.Pairs) == 0 {
		c.Pairs = []string{"sz"}
	}
	if c.Highlight == "" {
		c.Highlight = "yellow"
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Pairs))
	for _, p := range c.Pairs {
		switch p {
		case "sz", "kh":
		default:
			return fmt.Errorf("invalid pair %q: must be \"sz\" or \"kh\"", p)
		}
		if seen[p] {
			return fmt.Errorf("duplicate pair %q", p)
		}
		seen[p] = true
	}
	if !seen["sz"] && !seen["kh"] {
		return fmt.Errorf("at least one pair must be enabled")
	}
	switch c.Scope {
	case "body", "full":
	default:
		return fmt.Errorf("invalid scope %q: must be \"body\" or \"full\"", c.Scope)
	}
	return nil
}

// SessionConfig converts to the session package's configuration.
func (c Config) SessionConfig() session.Config {
	out := session.Config{
		Scope:     document.ScopeBody,
		Highlight: c.Highlight,
	}
	if c.Scope == "full" {
		out.Scope = document.ScopeFull
	}
	for _, p := range c.Pairs {
		switch p {
		case "sz":
			out.Pairs = append(out.Pairs, rules.PairSZ)
		case "kh":
			out.Pairs = append(out.Pairs, rules.PairKH)
		}
	}
	return out
}
