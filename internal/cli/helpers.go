package cli

import (
	"fmt"

	"github.com/roach88/predlog/internal/config"
	"github.com/roach88/predlog/internal/document"
	"github.com/roach88/predlog/internal/session"
)

// resolveConfig builds the effective configuration: file (when given),
// then flag overrides, then validation.
func resolveConfig(configPath string, pairs []string, scope string) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if len(pairs) > 0 {
		cfg.Pairs = pairs
	}
	if scope != "" {
		cfg.Scope = scope
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// outputCommandError renders a failure through the formatter (the JSON
// error envelope in json mode) and returns the ExitError the process
// exits with.
func outputCommandError(formatter *OutputFormatter, exitCode int, code, message string, err error) error {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	_ = formatter.Error(code, message)
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", code, message))
}

// lineCol converts a rune offset into 1-based line and column numbers.
func lineCol(text string, offset int) (line, col int) {
	line, col = 1, 1
	for i, r := range []rune(text) {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// MismatchReport is one mismatch in CLI output.
type MismatchReport struct {
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Found      string `json:"found"`
	Suggestion string `json:"suggestion"`
	NextWord   string `json:"next_word"`
}

// reportMismatches renders queue entries with document positions.
func reportMismatches(d *document.TextDocument, queue []session.Mismatch) ([]MismatchReport, error) {
	reports := make([]MismatchReport, 0, len(queue))
	for _, m := range queue {
		part, start, _, err := d.Offsets(m.Token.Location)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve mismatch position: %w", err)
		}
		line, col := lineCol(d.PartText(part), start)
		reports = append(reports, MismatchReport{
			Line:       line,
			Column:     col,
			Found:      m.Token.Text,
			Suggestion: m.Suggestion,
			NextWord:   m.Token.NextWord,
		})
	}
	return reports, nil
}
