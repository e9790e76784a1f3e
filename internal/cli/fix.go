package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/predlog/internal/document"
	"github.com/roach88/predlog/internal/session"
)

// FixOptions holds flags for the fix command.
type FixOptions struct {
	*RootOptions
	ConfigPath  string
	Pairs       []string
	Scope       string
	JournalPath string
	Output      string
}

// FixReport is the fix command's output payload.
type FixReport struct {
	File   string `json:"file"`
	Fixed  int    `json:"fixed"`
	Output string `json:"output"`
}

// NewFixCommand creates the fix command.
func NewFixCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FixOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fix <file>",
		Short: "Fix every preposition mismatch in a text file",
		Long: `Scan a plain-text file and apply every suggested correction.

Writes the corrected text back to the input file, or to --output when
given. Corrections are applied in document order.

Example:
  predlog fix letter.txt
  predlog fix letter.txt -o corrected.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fixFile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config")
	cmd.Flags().StringSliceVar(&opts.Pairs, "pairs", nil, "pairs to check (sz,kh)")
	cmd.Flags().StringVar(&opts.Scope, "scope", "", "search scope (body|full)")
	cmd.Flags().StringVar(&opts.JournalPath, "journal", "", "write a session journal to this SQLite file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output path (default: in place)")

	return cmd
}

func fixFile(opts *FixOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	cfg, err := resolveConfig(opts.ConfigPath, opts.Pairs, opts.Scope)
	if err != nil {
		return outputCommandError(formatter, ExitCommandError, "CONFIG_INVALID", "invalid configuration", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return outputCommandError(formatter, ExitCommandError, "READ_FAILED", "failed to read input file", err)
	}

	doc := document.NewText(string(data))
	sessOpts, closeJournal, err := sessionOptions(opts.JournalPath)
	if err != nil {
		return outputCommandError(formatter, ExitCommandError, "JOURNAL_OPEN_FAILED", "failed to open journal", err)
	}
	defer closeJournal()

	sess := session.New(doc, cfg.SessionConfig(), sessOpts...)
	if _, err := sess.Scan(cmd.Context()); err != nil {
		return outputCommandError(formatter, ExitFailure, "SCAN_FAILED", "scan failed", err)
	}
	fixed, err := sess.AcceptAll(cmd.Context())
	if err != nil {
		return outputCommandError(formatter, ExitFailure, "FIX_FAILED", "failed to apply corrections", err)
	}

	out := opts.Output
	if out == "" {
		out = path
	}
	if err := os.WriteFile(out, []byte(doc.BodyText()), 0o644); err != nil {
		return outputCommandError(formatter, ExitCommandError, "WRITE_FAILED", "failed to write output file", err)
	}

	report := FixReport{File: path, Fixed: fixed, Output: out}
	return formatter.Success(report, func(w io.Writer) {
		fmt.Fprintf(w, "%s: fixed %d mismatch(es) → %s\n", report.File, report.Fixed, report.Output)
	})
}
