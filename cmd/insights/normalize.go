package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/services"
)

// normalizeCmd re-runs the last pipeline step on a saved completion body,
// which helps when tuning a prompt against a captured response.
func normalizeCmd() *cobra.Command {
	var mode string
	var stripFences bool

	cmd := &cobra.Command{
		Use:   "normalize [response.json]",
		Short: "Normalize a saved completion response body (reads stdin without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runMode, err := models.ParseResponseMode(mode)
			if err != nil {
				return err
			}

			var raw []byte
			if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read response: %w", err)
			}

			result := services.NewNormalizer(stripFences).NormalizeBytes(raw, runMode)

			b, _ := json.MarshalIndent(result.Response(), "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			if !result.IsOK() {
				return result.Err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(models.ModeStructured), "response mode: structured|raw")
	cmd.Flags().BoolVar(&stripFences, "strip-fences", true, "strip a surrounding markdown code fence before parsing")
	return cmd
}
