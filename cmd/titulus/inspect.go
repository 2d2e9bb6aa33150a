package main

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/titulus"
	"github.com/tsawler/titulus/batch"
	"github.com/tsawler/titulus/config"
	"github.com/tsawler/titulus/spanio"
)

var (
	inspectConfig string
	inspectJSON   bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Infer and print the outline of a single document",
	Long: `Inspect runs the pipeline on one document and prints the inferred
title and outline. The format comes from the file extension, falling
back to content sniffing.

Examples:
  titulus inspect report.json
  titulus inspect manual.md --json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectConfig, "config", "c", "", "Path to YAML settings file")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print the raw JSON record instead of styled output")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if inspectConfig != "" {
		loaded, err := config.Load(inspectConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	src, err := batch.OpenSource(args[0])
	if err != nil {
		return err
	}

	result, err := titulus.FromSource(src).WithConfig(cfg.Pipeline()).Result()
	if err != nil {
		return err
	}

	if inspectJSON {
		data, err := spanio.EncodeResult(result)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	printResult(cmd.OutOrStdout(), args[0], result)
	return nil
}
