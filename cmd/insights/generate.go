package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-insights/internal/config"
	"alfredoptarigan/resume-insights/internal/logger"
	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/services"
)

func generateCmd() *cobra.Command {
	var mode string
	var preset string
	var promptFile string
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "generate <pdf>",
		Short: "Extract a résumé, run the prompt and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if schemaPath != "" {
				cfg.Prompt.SchemaPath = schemaPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			template, runMode, err := resolvePrompt(preset, promptFile, mode, cfg.Prompt.ResponseMode)
			if err != nil {
				return err
			}

			schema, err := services.LoadSchema(cfg.Prompt.SchemaPath)
			if err != nil {
				return err
			}

			client, err := services.NewCompletionClientFromConfig(cmd.Context(), cfg.Completion)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			pipeline := services.NewPipelineService(
				services.NewPDFParserService(),
				client,
				services.NewNormalizer(cfg.Prompt.StripCodeFences),
				services.PipelineOptions{
					Schema:       schema,
					AppendSchema: cfg.Prompt.SchemaPlacement == config.SchemaPlacementAppended,
					Strict:       cfg.Prompt.Strict,
				},
			)

			result := pipeline.Run(cmd.Context(), services.RunInput{
				Filename: filepath.Base(args[0]),
				Data:     data,
				Template: template,
				Mode:     runMode,
			})

			b, _ := json.MarshalIndent(result.Response(), "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			if !result.IsOK() {
				return result.Err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "response mode: structured|raw (default: RESPONSE_MODE or the preset's mode)")
	cmd.Flags().StringVar(&preset, "preset", "", "prompt preset name (see: insights prompt --list)")
	cmd.Flags().StringVar(&promptFile, "prompt-file", "", "file holding a prompt template; overrides the preset template")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "schema JSON file (default: SCHEMA_PATH)")
	return cmd
}

// resolvePrompt picks the template and mode the same way the HTTP form
// does: explicit text beats the preset, an explicit mode beats both.
func resolvePrompt(preset, promptFile, mode string, defaultMode models.ResponseMode) (string, models.ResponseMode, error) {
	template := ""
	runMode := defaultMode

	if preset != "" {
		p, ok := services.GetPreset(preset)
		if !ok {
			return "", "", fmt.Errorf("unknown preset: %s", preset)
		}
		template = p.Template
		runMode = p.Mode
	}

	if promptFile != "" {
		b, err := os.ReadFile(promptFile)
		if err != nil {
			return "", "", fmt.Errorf("failed to read prompt file: %w", err)
		}
		template = string(b)
	}

	if mode != "" {
		m, err := models.ParseResponseMode(mode)
		if err != nil {
			return "", "", err
		}
		runMode = m
	}

	return template, runMode, nil
}

func loadConfig() *config.Config {
	cfg := config.Load()
	// stdout carries the command's output, logs go to stderr
	_ = logger.Init(logger.Options{
		Level:      cfg.Logging.Level,
		Pretty:     cfg.Logging.Pretty,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
		Output:     os.Stderr,
	})
	return cfg
}
