package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/predlog/internal/journal"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Session string
}

// JournalReport is the report command's output payload.
type JournalReport struct {
	Journal string          `json:"journal"`
	Events  []journal.Event `json:"events"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report <journal.db>",
		Short: "Print the events recorded in a session journal",
		Long: `Print the scan and resolution events recorded in a session journal
written by check or fix with --journal.

Example:
  predlog fix letter.txt --journal run.db
  predlog report run.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportJournal(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Session, "session", "", "filter by session ID")

	return cmd
}

func reportJournal(opts *ReportOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if _, err := os.Stat(path); err != nil {
		return outputCommandError(formatter, ExitCommandError, "JOURNAL_NOT_FOUND", "journal not found", err)
	}

	j, err := journal.Open(path)
	if err != nil {
		return outputCommandError(formatter, ExitCommandError, "JOURNAL_OPEN_FAILED", "failed to open journal", err)
	}
	defer j.Close()

	events, err := j.Events(cmd.Context(), opts.Session)
	if err != nil {
		return outputCommandError(formatter, ExitFailure, "JOURNAL_READ_FAILED", "failed to read journal", err)
	}

	report := JournalReport{Journal: path, Events: events}
	return formatter.Success(report, func(w io.Writer) { renderJournalReport(w, report) })
}

func renderJournalReport(w io.Writer, report JournalReport) {
	if len(report.Events) == 0 {
		fmt.Fprintf(w, "%s: no events\n", report.Journal)
		return
	}
	fmt.Fprintf(w, "%s: %d event(s)\n", report.Journal, len(report.Events))
	for _, e := range report.Events {
		switch e.Kind {
		case "scan":
			fmt.Fprintf(w, "  %d\tscan\tgeneration=%s mismatches=%d\n", e.Seq, e.Generation, e.Mismatches)
		default:
			fmt.Fprintf(w, "  %d\t%s\t%s → %s\n", e.Seq, e.Kind, e.TokenText, e.Suggestion)
		}
	}
}
