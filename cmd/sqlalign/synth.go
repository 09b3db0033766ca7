package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sqlalign/internal/parser"
	"sqlalign/internal/parser/class"
	"sqlalign/internal/parser/toml"
	"sqlalign/internal/synth"
)

func (a *app) synthCmd() *cobra.Command {
	var (
		outFile      string
		dialectName  string
		schema       string
		suffix       string
		noDrop       bool
		noBaseFields bool
		noSequence   bool
		keepNames    bool
	)

	cmd := &cobra.Command{
		Use:   "synth [Entity.java|decl.toml]",
		Short: "Synthesize an aligned DDL script from a class declaration",
		Long: `Synth reads a class-like declaration (fields with doc comments and optional
@TableName / @KeySequence annotations) and prints a CREATE TABLE script with
column comments for the chosen dialect. A .toml file describing the same
declaration is accepted too. Reads stdin (as a class) when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("dialect") {
				a.cfg.Synth.Dialect = dialectName
			}
			if flags.Changed("schema") {
				a.cfg.Synth.Schema = schema
			}
			if flags.Changed("suffix") {
				a.cfg.Synth.TableSuffix = suffix
			}
			if noDrop {
				a.cfg.Synth.IncludeDrop = false
			}
			if noBaseFields {
				a.cfg.Synth.IncludeBaseFields = false
			}
			if noSequence {
				a.cfg.Synth.IncludeSequence = false
			}
			if keepNames {
				a.cfg.Synth.ConvertNaming = false
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			opts := a.cfg.SynthOptions()

			script, err := a.synthesize(cmd, argOrEmpty(args), opts)
			if err != nil {
				return err
			}
			return writeResult(cmd, "", outFile, script)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&outFile, "output", "o", "", "Output file for the script")
	flags.StringVarP(&dialectName, "dialect", "d", "", "Target dialect: postgresql, mysql or oracle")
	flags.StringVar(&schema, "schema", "", "Schema to qualify the table name with")
	flags.StringVar(&suffix, "suffix", "", "Suffix appended to the table comment")
	flags.BoolVar(&noDrop, "no-drop", false, "Omit the header and DROP TABLE IF EXISTS")
	flags.BoolVar(&noBaseFields, "no-base-fields", false, "Omit the tenant and audit base columns")
	flags.BoolVar(&noSequence, "no-sequence", false, "Omit sequence statements")
	flags.BoolVar(&keepNames, "keep-names", false, "Keep field and class names instead of converting to snake_case")

	return cmd
}

// synthesize parses path through the extension-aware parser, or stdin
// through the class parser.
func (a *app) synthesize(cmd *cobra.Command, path string, opts synth.Options) (string, error) {
	log := a.log.With(zap.String("dialect", string(opts.Dialect)))

	if path == "" || path == "-" {
		src, err := readInput(cmd, path)
		if err != nil {
			return "", err
		}
		return synth.Synthesize(src, opts)
	}

	decl, err := parser.ParseFile(path)
	if err != nil {
		var unsupported *parser.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			printWarn(cmd, unsupported.Error()+"; reading it as a class declaration")
			src, readErr := readInput(cmd, path)
			if readErr != nil {
				return "", readErr
			}
			return synth.Synthesize(src, opts)
		}
		if errors.Is(err, class.ErrNoTypeName) || errors.Is(err, toml.ErrNoTypeName) {
			return "", fmt.Errorf("%w: %w", synth.ErrNoTypeName, err)
		}
		return "", err
	}

	if err := decl.Validate(); err != nil {
		printWarn(cmd, "warning: "+err.Error())
	}
	log.Debug("declaration parsed",
		zap.String("type", decl.TypeName),
		zap.String("table", decl.TableName),
		zap.Int("fields", len(decl.Fields)))
	return synth.Render(decl, opts), nil
}
