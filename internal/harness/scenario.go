package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/archangelinux/portfolio/internal/config"
)

// Scenario defines one rotation to execute and check.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Variants is the rotation list, in cycle order.
	Variants []string `yaml:"variants"`

	// Ticks is the number of transitions to run after the seed frame.
	Ticks int `yaml:"ticks"`

	// Overrides are the rules applied after each diff. None when absent.
	Overrides []config.Override `yaml:"overrides,omitempty"`

	// Assertions validate the resulting frames.
	Assertions []Assertion `yaml:"assertions"`

	// RunID is an optional fixed run token. Defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`
}

// Assertion validates one frame of the trace.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Tick selects the frame. 0 is the seed frame.
	Tick int64 `yaml:"tick"`

	// Letters is the expected concatenation of new letters (new_letters).
	Letters *string `yaml:"letters,omitempty"`

	// IDs are the expected letter IDs (ids).
	IDs []uint64 `yaml:"ids,omitempty"`

	// Step is the expected variant index (step).
	Step *int `yaml:"step,omitempty"`

	// Stats holds the expected statistics (stats). Subset match.
	Stats map[string]int `yaml:"stats,omitempty"`
}

// Assertion type constants.
const (
	AssertNewLetters = "new_letters"
	AssertIDs        = "ids"
	AssertStep       = "step"
	AssertStats      = "stats"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Variants) == 0 {
		return fmt.Errorf("variants list is required and must be non-empty")
	}

	if s.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a, s.Ticks); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}

	return nil
}

func validateAssertion(a Assertion, ticks int) error {
	if a.Tick < 0 || a.Tick > int64(ticks) {
		return fmt.Errorf("tick %d out of range [0, %d]", a.Tick, ticks)
	}

	switch a.Type {
	case AssertNewLetters:
		if a.Letters == nil {
			return fmt.Errorf("new_letters requires 'letters'")
		}
	case AssertIDs:
		if a.IDs == nil {
			return fmt.Errorf("ids requires 'ids'")
		}
	case AssertStep:
		if a.Step == nil {
			return fmt.Errorf("step requires 'step'")
		}
	case AssertStats:
		if len(a.Stats) == 0 {
			return fmt.Errorf("stats requires 'stats'")
		}
		for k := range a.Stats {
			if _, ok := statFields[k]; !ok {
				return fmt.Errorf("unknown stats field %q", k)
			}
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
