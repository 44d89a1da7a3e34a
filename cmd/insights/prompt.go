package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-insights/internal/services"
)

func promptCmd() *cobra.Command {
	var preset string
	var list bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print a preset prompt template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tMODE\tTITLE")
				for _, p := range services.ListPresets() {
					fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Mode, p.Title)
				}
				return w.Flush()
			}

			p, ok := services.GetPreset(preset)
			if !ok {
				return fmt.Errorf("unknown preset: %s", preset)
			}
			fmt.Fprint(cmd.OutOrStdout(), p.Template)
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", services.DefaultPreset, "preset to print")
	cmd.Flags().BoolVar(&list, "list", false, "list available presets")
	return cmd
}
