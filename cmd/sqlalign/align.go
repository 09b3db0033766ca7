package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sqlalign/internal/align"
	"sqlalign/internal/core"
	"sqlalign/internal/output"
)

func (a *app) applyAlignFlags(cmd *cobra.Command, wrapWidth int, caseSensitive bool) error {
	if cmd.Flags().Changed("wrap-width") {
		a.cfg.Align.WrapWidth = wrapWidth
	}
	if cmd.Flags().Changed("case-sensitive") {
		a.cfg.Align.CaseSensitive = caseSensitive
	}
	return a.cfg.Validate()
}

func (a *app) alignCmd() *cobra.Command {
	var (
		outFile       string
		wrapWidth     int
		caseSensitive bool
		lineNumbers   bool
		report        bool
	)

	cmd := &cobra.Command{
		Use:   "align [file.sql]",
		Short: "Align CREATE TABLE columns and COMMENT ON statements",
		Long: `Align rewrites CREATE TABLE column lists into aligned name/type columns and
pads COMMENT ON statements to a common IS column, wrapping long bodies.
Anything else in the script is left untouched. Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.applyAlignFlags(cmd, wrapWidth, caseSensitive); err != nil {
				return err
			}

			text, err := readInput(cmd, argOrEmpty(args))
			if err != nil {
				return err
			}

			aligned := align.Align(text, a.cfg.AlignOptions())
			a.log.Debug("aligned", zap.Int("in_bytes", len(text)), zap.Int("out_bytes", len(aligned)))

			if report {
				aligned = align.Report(text, aligned)
			}
			if lineNumbers {
				aligned = align.NumberLines(aligned)
			}
			return writeResult(cmd, string(output.FormatText), outFile, aligned)
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Output file for the aligned script")
	cmd.Flags().IntVarP(&wrapWidth, "wrap-width", "w", 0, fmt.Sprintf("Comment wrap width, %d to %d (default from config)", core.MinWrapWidth, core.MaxWrapWidth))
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match CREATE TABLE / COMMENT ON keywords case-sensitively")
	cmd.Flags().BoolVarP(&lineNumbers, "line-numbers", "n", false, "Prefix every output line with its line number")
	cmd.Flags().BoolVar(&report, "report", false, "Prepend an alignment report header")

	return cmd
}

func (a *app) statsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats [file.sql]",
		Short: "Count lines, comment lines and column markers in a script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.NewFormatter(format)
			if err != nil {
				return err
			}

			text, err := readInput(cmd, argOrEmpty(args))
			if err != nil {
				return err
			}

			formatted, err := formatter.FormatStats(align.ComputeStats(text))
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), formatted)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, table or json")

	return cmd
}
