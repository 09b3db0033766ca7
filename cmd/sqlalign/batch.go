package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sqlalign/internal/batch"
	"sqlalign/internal/config"
	"sqlalign/internal/output"
)

func (a *app) batchCmd() *cobra.Command {
	var (
		outDir  string
		prefix  string
		workers int
		decode  string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "batch <file.sql>...",
		Short: "Align many scripts into one zip archive with a summary report",
		Long: `Batch aligns every input file, stores the results as <prefix><name> in
<prefix>sql_files.zip and prints a per-file summary. A file that cannot be
decoded is reported in the summary and does not stop the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("prefix") {
				a.cfg.Batch.Prefix = prefix
			}
			if flags.Changed("workers") {
				a.cfg.Batch.Workers = workers
			}
			if flags.Changed("decode") {
				a.cfg.Batch.Decode = config.DecodeMode(decode)
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			formatter, err := output.NewFormatter(format)
			if err != nil {
				return err
			}

			files := make([]batch.File, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				files = append(files, batch.File{Name: filepath.Base(path), Data: data})
			}

			p := batch.NewProcessor(batch.OptionsFromConfig(a.cfg), a.log)
			result, err := p.Process(cmd.Context(), files)
			if err != nil {
				return err
			}

			archivePath := filepath.Join(outDir, p.ArchiveName())
			if err := os.WriteFile(archivePath, result.Archive, 0644); err != nil {
				return fmt.Errorf("failed to write archive: %w", err)
			}

			formatted, err := formatter.FormatBatch(result.Report)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			if _, err := fmt.Fprint(cmd.OutOrStdout(), formatted); err != nil {
				return err
			}

			printInfo(cmd, format, fmt.Sprintf("Archive saved to %s", archivePath))
			if n := len(result.Errors); n > 0 {
				printWarn(cmd, fmt.Sprintf("%d file(s) could not be processed", n))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&outDir, "out-dir", ".", "Directory the archive is written to")
	flags.StringVarP(&prefix, "prefix", "p", "", "Prefix for aligned file names and the archive (default from config)")
	flags.IntVarP(&workers, "workers", "j", 0, "Concurrent files, 0 for one per CPU (default from config)")
	flags.StringVar(&decode, "decode", "", "Input decoding: strict or lenient (default from config)")
	flags.StringVarP(&format, "format", "f", "", "Summary format: text, table or json")

	return cmd
}
