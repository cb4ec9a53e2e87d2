package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUploadCommand(addr *string) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "upload <file> [file...]",
		Short: "Upload media files for transcription",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(*addr)
			result, err := client.upload(args)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			files, _ := result["files"].([]any)
			for _, entry := range files {
				file, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				name, _ := file["filename"].(string)
				status, _ := file["status"].(string)
				if detail, _ := file["detail"].(string); detail != "" {
					fmt.Fprintf(out, "%s: %s (%s)\n", name, status, detail)
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", name, status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of per-file lines")
	return cmd
}
