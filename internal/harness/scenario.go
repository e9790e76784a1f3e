package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one proofing conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is the body text the scenario runs against.
	Document string `yaml:"document"`

	// Pairs lists the enabled preposition pairs ("sz", "kh").
	// Defaults to sz only.
	Pairs []string `yaml:"pairs,omitempty"`

	// Scope is "body" or "full". Defaults to body.
	Scope string `yaml:"scope,omitempty"`

	// Flow is the sequence of operations to execute.
	Flow []Step `yaml:"flow"`

	// FinalDocument, when set, is asserted against the document text
	// after the flow completes.
	FinalDocument *string `yaml:"final_document,omitempty"`

	// FinalQueueLen, when set, is asserted against the queue length
	// after the flow completes.
	FinalQueueLen *int `yaml:"final_queue_len,omitempty"`
}

// Step is one operation in a scenario flow.
type Step struct {
	// Op is "scan", "accept_one", "reject_one", "accept_all", or
	// "reject_all".
	Op string `yaml:"op"`

	// Expect validates the operation's outcome. Nil skips validation.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies an operation's expected outcome. Only the field
// matching the operation kind is consulted.
type Expect struct {
	// Count is the expected mismatch count of a scan.
	Count *int `yaml:"count,omitempty"`

	// Applied is whether a single resolution was expected to act
	// (false on an empty queue).
	Applied *bool `yaml:"applied,omitempty"`

	// Resolved is the expected entry count of a bulk resolution.
	Resolved *int `yaml:"resolved,omitempty"`
}

// LoadScenario reads and validates one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(s.Flow) == 0 {
		return nil, fmt.Errorf("scenario %s: flow must not be empty", path)
	}
	for i, step := range s.Flow {
		switch step.Op {
		case "scan", "accept_one", "reject_one", "accept_all", "reject_all":
		default:
			return nil, fmt.Errorf("scenario %s: flow[%d]: unknown op %q", path, i, step.Op)
		}
	}
	return &s, nil
}

// LoadScenarios reads every *.yaml scenario in a directory, sorted by
// file name for deterministic test order.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
