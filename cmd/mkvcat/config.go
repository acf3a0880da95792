package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/mkvcat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example config file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates syntax, field values and environment variable substitution.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configTestCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configInitCmd.Flags().String("root", "", "Scan root to write instead of the template")
	configInitCmd.Flags().String("catalog", "", "Catalog table path to write instead of the template")
	configInitCmd.Flags().String("duplicates", "", "Duplicates table path to write instead of the template")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := writeInitConfig(cmd, path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// writeInitConfig writes the commented template, or the resolved defaults
// with overrides applied when any path flag is given.
func writeInitConfig(cmd *cobra.Command, path string) error {
	root, _ := cmd.Flags().GetString("root")
	catalogPath, _ := cmd.Flags().GetString("catalog")
	duplicatesPath, _ := cmd.Flags().GetString("duplicates")
	if root == "" && catalogPath == "" && duplicatesPath == "" {
		return config.WriteDefault(path)
	}

	cfg := config.Default()
	if root != "" {
		cfg.Scan.Root = root
	}
	if catalogPath != "" {
		cfg.Output.Catalog = catalogPath
	}
	if duplicatesPath != "" {
		cfg.Output.Duplicates = duplicatesPath
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return &config.Error{Path: path, Errors: errs}
	}
	return cfg.Write(path)
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(w, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(w, cfg)
	fmt.Fprintln(w, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.Error) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}
	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, msg := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "Scan root:   %s\n", cfg.Scan.Root)
	fmt.Fprintf(w, "Extensions:  %s\n", strings.Join(cfg.Scan.Extensions, ", "))
	fmt.Fprintf(w, "Catalog:     %s\n", cfg.Output.Catalog)
	fmt.Fprintf(w, "Duplicates:  %s\n", cfg.Output.Duplicates)
	fmt.Fprintf(w, "Dedupe:      key=%s policy=%s loose=%t\n", cfg.Dedupe.Key, cfg.Dedupe.Policy, cfg.Dedupe.Loose)
	if cfg.Dedupe.SimilarityThreshold > 0 {
		fmt.Fprintf(w, "Similarity:  %.2f\n", cfg.Dedupe.SimilarityThreshold)
	}
	if len(cfg.Extract.ExtraLanguages) > 0 {
		fmt.Fprintf(w, "Languages:   +%s\n", strings.Join(cfg.Extract.ExtraLanguages, ", +"))
	}
}
