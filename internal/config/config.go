// Package config loads rotation settings from YAML or CUE files.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/archangelinux/portfolio/internal/morph"
	"github.com/archangelinux/portfolio/internal/palette"
)

//go:embed schema.cue
var schemaCUE string

// DefaultIntervalMS is the stock cadence between transitions.
const DefaultIntervalMS = 1500

// DefaultVariants is the stock rotation, in cycle order.
var DefaultVariants = []string{
	"angelina",
	"angelinux",
	"archangel",
	"architect",
	"architect of",
	"architect of change",
	"archangelinux",
}

// Config describes one rotation.
type Config struct {
	// Variants are the strings to cycle through, in order.
	Variants []string `yaml:"variants" json:"variants,omitempty"`

	// IntervalMS is the cadence between transitions in milliseconds.
	IntervalMS int `yaml:"interval_ms" json:"interval_ms,omitempty"`

	// Overrides force letters of specific variants to be shown as new.
	// Absent means the stock overrides; an explicit empty list disables them.
	Overrides []Override `yaml:"overrides" json:"overrides,omitempty"`

	// Palette sets the presentation colours.
	Palette Palette `yaml:"palette" json:"palette,omitempty"`
}

// Override is the file form of a morph.Rule.
type Override struct {
	Target    string   `yaml:"target" json:"target"`
	Chars     []string `yaml:"chars,omitempty" json:"chars,omitempty"`
	Positions []int    `yaml:"positions,omitempty" json:"positions,omitempty"`
}

// Palette is the file form of palette.Palette.
type Palette struct {
	First  string `yaml:"first,omitempty" json:"first,omitempty"`
	Accent string `yaml:"accent,omitempty" json:"accent,omitempty"`
}

// Default returns the stock rotation.
func Default() Config {
	c := Config{}
	c.applyDefaults()
	return c
}

// Load reads a configuration file. The format is chosen by extension:
// .yaml/.yml or .cue. Fields left out fall back to the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var c Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		c, err = parseYAML(data)
	case ".cue":
		c, err = parseCUE(data, path)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q: must be .yaml, .yml or .cue", ext)
	}
	if err != nil {
		return Config{}, err
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// parseYAML decodes with strict field validation so typos like "variant:"
// are reported instead of silently ignored.
func parseYAML(data []byte) (Config, error) {
	var c Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return c, nil
}

// parseCUE unifies the file with the closed #Rotation schema before decoding.
func parseCUE(data []byte, path string) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("building config schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return Config{}, fmt.Errorf("failed to parse CUE: %w", positionError(err))
	}

	v = schema.LookupPath(cue.ParsePath("#Rotation")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("invalid CUE config: %w", positionError(err))
	}

	var c Config
	if err := v.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("decoding CUE config: %w", err)
	}
	return c, nil
}

// PositionError is a CUE config error with its source position.
type PositionError struct {
	Message string
	Pos     token.Pos
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
}

// positionError keeps the first CUE error and where it happened.
func positionError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	for _, pos := range cueerrors.Positions(first) {
		if pos.IsValid() {
			return &PositionError{Message: first.Error(), Pos: pos}
		}
	}
	return err
}

func (c *Config) applyDefaults() {
	if c.Variants == nil {
		c.Variants = append([]string(nil), DefaultVariants...)
	}
	if c.IntervalMS == 0 {
		c.IntervalMS = DefaultIntervalMS
	}
	if c.Overrides == nil {
		c.Overrides = []Override{{Target: morph.DefaultRuleTarget, Chars: []string{morph.DefaultRuleChar}}}
	}
	if c.Palette.First == "" {
		c.Palette.First = palette.DefaultFirst
	}
	if c.Palette.Accent == "" {
		c.Palette.Accent = palette.DefaultAccent
	}
}

// Validate reports configuration errors. Empty variant lists and bad
// intervals are reported as *morph.Error.
func (c Config) Validate() error {
	if len(c.Variants) == 0 {
		return morph.NewEmptyVariantListError()
	}
	if c.IntervalMS <= 0 {
		return morph.NewInvalidIntervalError(c.Interval())
	}
	for i, o := range c.Overrides {
		if o.Target == "" {
			return fmt.Errorf("override %d: target is required", i)
		}
		if len(o.Chars) == 0 && len(o.Positions) == 0 {
			return fmt.Errorf("override %d (%q): chars or positions is required", i, o.Target)
		}
		for _, p := range o.Positions {
			if p < 0 {
				return fmt.Errorf("override %d (%q): negative position %d", i, o.Target, p)
			}
		}
	}
	return nil
}

// Interval returns IntervalMS as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// Rules builds the override table. Without an overrides list the stock
// rules apply.
func (c Config) Rules() *morph.RuleTable {
	if c.Overrides == nil {
		return morph.DefaultRules()
	}
	table := morph.NewRuleTable()
	for _, o := range c.Overrides {
		if len(o.Chars) > 0 {
			table.Add(morph.ForceChars(o.Target, o.Chars...))
		}
		if len(o.Positions) > 0 {
			table.Add(morph.ForcePositions(o.Target, o.Positions...))
		}
	}
	return table
}

// PaletteStyle returns the presentation palette.
func (c Config) PaletteStyle() palette.Palette {
	return palette.Palette{
		First:  lipgloss.Color(c.Palette.First),
		Accent: lipgloss.Color(c.Palette.Accent),
	}
}
