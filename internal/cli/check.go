package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/predlog/internal/document"
	"github.com/roach88/predlog/internal/journal"
	"github.com/roach88/predlog/internal/session"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	ConfigPath  string
	Pairs       []string
	Scope       string
	JournalPath string
}

// CheckReport is the check command's output payload.
type CheckReport struct {
	File       string           `json:"file"`
	Count      int              `json:"count"`
	Mismatches []MismatchReport `json:"mismatches,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Scan a text file for preposition mismatches",
		Long: `Scan a plain-text file for single-letter preposition mismatches.

Lists every place where the written preposition disagrees with the
phonetic rule for the word that follows it. Exits 1 when mismatches
are found, 0 when the file is clean.

Example:
  predlog check letter.txt
  predlog check --pairs sz,kh --format json letter.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkFile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config")
	cmd.Flags().StringSliceVar(&opts.Pairs, "pairs", nil, "pairs to check (sz,kh)")
	cmd.Flags().StringVar(&opts.Scope, "scope", "", "search scope (body|full)")
	cmd.Flags().StringVar(&opts.JournalPath, "journal", "", "write a session journal to this SQLite file")

	return cmd
}

func checkFile(opts *CheckOptions, path string, cmd *cobra.Command) error {
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
	res, err := sess.Scan(cmd.Context())
	if err != nil {
		return outputCommandError(formatter, ExitFailure, "SCAN_FAILED", "scan failed", err)
	}

	mismatches, err := reportMismatches(doc, sess.Queue())
	if err != nil {
		return outputCommandError(formatter, ExitFailure, "REPORT_FAILED", "failed to build report", err)
	}
	report := CheckReport{File: path, Count: res.Count, Mismatches: mismatches}

	if err := formatter.Success(report, func(w io.Writer) { renderCheckReport(w, report) }); err != nil {
		return err
	}

	if res.Count > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d mismatch(es) found", res.Count))
	}
	return nil
}

func renderCheckReport(w io.Writer, report CheckReport) {
	if report.Count == 0 {
		fmt.Fprintf(w, "%s: no mismatches found\n", report.File)
		return
	}
	fmt.Fprintf(w, "%s: %d mismatch(es)\n", report.File, report.Count)
	for _, m := range report.Mismatches {
		fmt.Fprintf(w, "  %d:%d\t%s → %s\tbefore %q\n",
			m.Line, m.Column, m.Found, m.Suggestion, m.NextWord)
	}
}

// sessionOptions wires an optional journal into the session.
func sessionOptions(journalPath string) ([]session.Option, func(), error) {
	if journalPath == "" {
		return nil, func() {}, nil
	}
	j, err := journal.Open(journalPath)
	if err != nil {
		return nil, nil, err
	}
	return []session.Option{session.WithRecorder(j)}, func() { _ = j.Close() }, nil
}
