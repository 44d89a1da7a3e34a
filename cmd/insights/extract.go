package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-insights/internal/services"
)

func extractCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "extract <pdf>",
		Short: "Print the text layer of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			if _, err := services.DetectDocumentType(filepath.Base(args[0]), data); err != nil {
				return err
			}

			content, err := services.NewPDFParserService().ExtractText(data)
			if err != nil {
				return err
			}

			if asJSON {
				b, _ := json.MarshalIndent(map[string]any{
					"page_count": content.PageCount,
					"pages":      content.Pages,
					"text":       content.Text,
				}, "", "  ")
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), content.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print pages and page count as JSON")
	return cmd
}
