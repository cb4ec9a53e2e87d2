package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"scribe/internal/queue"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func newStatusCommand(addr *string) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show transcription job statuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(*addr)
			var rows []queue.JobStatus
			if err := client.getJSON("/api/transcription/status", &rows); err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, rows)
			}
			printStatusTable(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newHealthCommand(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show aggregate queue counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(*addr)
			var summary queue.HealthSummary
			if err := client.getJSON("/api/health", &summary); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total:      %d\n", summary.Total)
			fmt.Fprintf(out, "Queued:     %d\n", summary.Queued)
			fmt.Fprintf(out, "Processing: %d\n", summary.Processing)
			fmt.Fprintf(out, "Completed:  %d\n", summary.Completed)
			fmt.Fprintf(out, "Failed:     %d\n", summary.Failed)
			return nil
		},
	}
}

func printStatusTable(out io.Writer, rows []queue.JobStatus) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "No transcription jobs")
		return
	}

	colorize := shouldColorize(out)
	tableRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, []string{
			row.Filename,
			formatStatus(row.Status, colorize),
			row.Error,
			row.Timestamp,
		})
	}
	fmt.Fprintln(out, renderTable([]string{"File", "Status", "Error", "Updated"}, tableRows))
}

func formatStatus(status queue.Status, colorize bool) string {
	label := string(status)
	if !colorize {
		return label
	}
	switch status {
	case queue.StatusCompleted:
		return ansiGreen + label + ansiReset
	case queue.StatusFailed:
		return ansiRed + label + ansiReset
	case queue.StatusProcessing:
		return ansiYellow + label + ansiReset
	case queue.StatusQueued:
		return ansiBlue + label + ansiReset
	default:
		return label
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
