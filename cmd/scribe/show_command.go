package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/metadata"
)

func newShowCommand(addr *string) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <filename>",
		Short: "Show the metadata record for a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(*addr)
			var record metadata.Record
			path := "/api/metadata/" + url.PathEscape(args[0])
			if err := client.getJSON(path, &record); err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, record)
			}
			printRecord(cmd, &record)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of formatted output")
	return cmd
}

func printRecord(cmd *cobra.Command, record *metadata.Record) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:       %s\n", record.Filename)
	fmt.Fprintf(out, "Type:       %s\n", record.Type)
	fmt.Fprintf(out, "Uploaded:   %s\n", record.Timestamp)
	if len(record.Labels) > 0 {
		fmt.Fprintf(out, "Labels:     %s\n", strings.Join(record.Labels, ", "))
	}
	fmt.Fprintf(out, "Segments:   %d\n", len(record.Transcripts))
	if text := strings.TrimSpace(record.Transcription); text != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, text)
	}
}
