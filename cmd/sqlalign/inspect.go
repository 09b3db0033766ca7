package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sqlalign/internal/apply"
	"sqlalign/internal/dialect"
	"sqlalign/internal/output"
)

func (a *app) inspectCmd() *cobra.Command {
	var (
		dsn         string
		dialectName string
		envFile     string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "inspect <table>",
		Short: "Show a live table's columns and comments",
		Long: `Inspect connects like apply does and prints the columns, types and comments the
database stored for one table, which is a quick way to check an applied script.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("dialect") {
				a.cfg.Apply.Dialect = dialectName
			}
			if dsn != "" {
				a.cfg.Apply.DSN = dsn
			}
			if err := a.cfg.ResolveDSN(envFile); err != nil {
				return err
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			typ, err := dialect.ParseType(a.cfg.Apply.Dialect)
			if err != nil {
				return err
			}
			formatter, err := output.NewFormatter(format)
			if err != nil {
				return err
			}

			applier := apply.NewApplier(apply.Options{
				DSN:     a.cfg.Apply.DSN,
				Dialect: typ,
				Out:     cmd.OutOrStdout(),
				Logger:  a.log,
			})
			if err := applier.Connect(cmd.Context()); err != nil {
				return err
			}
			defer func() {
				_ = applier.Close()
			}()

			info, err := applier.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			formatted, err := formatter.FormatTableInfo(info)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), formatted)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dsn, "dsn", "", "Database connection string")
	flags.StringVarP(&dialectName, "dialect", "d", "", "Database dialect: mysql or postgresql (default from config)")
	flags.StringVar(&envFile, "env-file", ".env", "File with environment variables to load before resolving the DSN")
	flags.StringVarP(&format, "format", "f", "", "Output format: text, table or json")

	return cmd
}
