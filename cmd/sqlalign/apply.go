package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sqlalign/internal/apply"
	"sqlalign/internal/config"
	"sqlalign/internal/dialect"
)

func (a *app) applyCmd() *cobra.Command {
	var (
		dsn                   string
		dialectName           string
		envFile               string
		dryRun                bool
		transaction           bool
		allowNonTransactional bool
		unsafe                bool
	)

	cmd := &cobra.Command{
		Use:   "apply <script.sql>",
		Short: "Execute a synthesized or aligned script against a database",
		Long: `Apply runs every statement of the script against the database given by --dsn,
apply.dsn in the configuration, or the ` + config.DSNEnv + ` environment variable
(optionally loaded from a .env file). Destructive statements such as DROP TABLE
require --unsafe. Use --dry-run to see the preflight analysis only.`,
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

			script, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			applier := apply.NewApplier(apply.Options{
				DSN:                   a.cfg.Apply.DSN,
				Dialect:               typ,
				DryRun:                dryRun,
				Transaction:           transaction,
				AllowNonTransactional: allowNonTransactional,
				Unsafe:                unsafe,
				Out:                   cmd.OutOrStdout(),
				Logger:                a.log,
			})

			if !dryRun {
				if err := applier.Connect(cmd.Context()); err != nil {
					return err
				}
				defer func() {
					_ = applier.Close()
				}()
			}

			if err := applier.Apply(cmd.Context(), script); err != nil {
				return fmt.Errorf("apply failed: %w", err)
			}
			if !dryRun {
				printInfo(cmd, "", "Script applied.")
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dsn, "dsn", "", "Database connection string")
	flags.StringVarP(&dialectName, "dialect", "d", "", "Database dialect: mysql or postgresql (default from config)")
	flags.StringVar(&envFile, "env-file", ".env", "File with environment variables to load before resolving the DSN")
	flags.BoolVar(&dryRun, "dry-run", false, "Show preflight analysis and statements without executing")
	flags.BoolVar(&transaction, "transaction", true, "Run all statements in a single transaction when possible")
	flags.BoolVar(&allowNonTransactional, "allow-non-transactional", false, "Run statements that cannot be rolled back outside a transaction")
	flags.BoolVar(&unsafe, "unsafe", false, "Allow destructive statements such as DROP TABLE")

	return cmd
}
