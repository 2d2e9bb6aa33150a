package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/titulus/batch"
	"github.com/tsawler/titulus/catalog"
	"github.com/tsawler/titulus/config"
	"github.com/tsawler/titulus/logging"
)

var (
	inputDir    string
	outputDir   string
	configPath  string
	catalogPath string
	logStyle    string
	logLevel    string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a directory of documents into outline records",
	Long: `Process scans the input directory for supported documents (span-dump
JSON, HTML, Markdown), infers a title and outline for each, and writes
one <stem>.json record per input to the output directory.

A document that fails still produces a degraded record, so one bad
input never stops the batch.

Examples:
  # Process a directory with default settings
  titulus process --input ./docs --output ./out

  # Tuned thresholds from a settings file, runs recorded to SQLite
  titulus process -i ./docs -o ./out --config titulus.yaml --catalog runs.db

  # Machine-readable logs
  titulus process -i ./docs -o ./out --log-style json`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory of documents to process")
	processCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for JSON outline records")
	processCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML settings file")
	processCmd.Flags().StringVar(&catalogPath, "catalog", "", "SQLite database file recording each run")
	processCmd.Flags().StringVar(&logStyle, "log-style", "", "Log style: terminal, json, noop")
	processCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags override the settings file.
	if inputDir != "" {
		cfg.Batch.Input = inputDir
	}
	if outputDir != "" {
		cfg.Batch.Output = outputDir
	}
	if catalogPath != "" {
		cfg.Batch.Catalog = catalogPath
	}
	if logStyle != "" {
		cfg.Logging.Style = logging.Style(logStyle)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if cfg.Batch.Input == "" {
		return fmt.Errorf("no input directory: set --input or batch.input in the settings file")
	}
	if cfg.Batch.Output == "" {
		return fmt.Errorf("no output directory: set --output or batch.output in the settings file")
	}

	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var cat *catalog.Catalog
	if cfg.Batch.Catalog != "" {
		cat, err = catalog.Open(cfg.Batch.Catalog)
		if err != nil {
			return err
		}
		defer cat.Close()
	}

	processor := batch.New(batch.Options{
		InputDir:  cfg.Batch.Input,
		OutputDir: cfg.Batch.Output,
		Pipeline:  cfg.Pipeline(),
		Logger:    logger,
		Catalog:   cat,
	})

	summary, err := processor.Run(context.Background())
	if err != nil {
		return err
	}

	printBatchSummary(cmd.OutOrStdout(), cfg.Batch.Output, summary)
	return nil
}
