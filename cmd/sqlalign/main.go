// Package main is the sqlalign command line tool. It uses the cobra package
// for command handling and zap for diagnostics.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sqlalign/internal/config"
	"sqlalign/internal/output"
)

// app carries the state shared by every sub-command once the root
// command's pre-run has loaded it.
type app struct {
	configPath string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "sqlalign",
		Short:         "Align CREATE TABLE / COMMENT ON scripts and synthesize DDL from class declarations",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Configuration file (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(a.alignCmd())
	rootCmd.AddCommand(a.statsCmd())
	rootCmd.AddCommand(a.synthCmd())
	rootCmd.AddCommand(a.batchCmd())
	rootCmd.AddCommand(a.applyCmd())
	rootCmd.AddCommand(a.inspectCmd())

	return rootCmd
}

func (a *app) load() error {
	cfg, err := config.Discover(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = log
	a.log.Debug("configuration loaded", zap.String("path", a.configPath))
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopmentConfig().Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// readInput returns the contents of path, or of stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// writeResult prints text to stdout, or saves it to outFile and reports
// where it went.
func writeResult(cmd *cobra.Command, format, outFile, text string) error {
	if outFile == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(outFile, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	printInfo(cmd, format, fmt.Sprintf("Output saved to %s", outFile))
	return nil
}

// printInfo writes a status line. Machine-readable formats keep stdout
// clean, so the line goes to stderr for them.
func printInfo(cmd *cobra.Command, format string, msg string) {
	w := cmd.OutOrStdout()
	if strings.EqualFold(strings.TrimSpace(format), string(output.FormatJSON)) {
		w = cmd.ErrOrStderr()
	}
	_, _ = color.New(color.FgGreen).Fprintln(w, msg)
}

func printWarn(cmd *cobra.Command, msg string) {
	_, _ = color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), msg)
}
