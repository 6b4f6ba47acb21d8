package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"schemaforge/internal/config"
	"schemaforge/internal/document"
	"schemaforge/internal/generator"
	"schemaforge/internal/model"
	"schemaforge/internal/output"
	mysqlparser "schemaforge/internal/parser/mysql"
	tomlparser "schemaforge/internal/parser/toml"
	"schemaforge/internal/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "schemaforge",
		Short: "Schema design toolkit: DDL generation and schema validation",
	}

	rootCmd.AddCommand(generateCmd(cfg), validateCmd(cfg), importCmd(cfg), convertCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadSchema reads a schema document, picking the format by file extension.
func loadSchema(path string) (model.Schema, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return tomlparser.NewParser().ParseFile(path)
	}
	return document.ParseSchemaFile(path)
}

func writeOutput(outFile, content string) error {
	if outFile == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Output saved to %s\n", outFile)
	return nil
}

func generateCmd(cfg config.Config) *cobra.Command {
	var (
		kindName string
		outFile  string
		tables   []string
		opts     = generator.DefaultOptions()
	)

	cmd := &cobra.Command{
		Use:   "generate <schema.json|schema.toml>",
		Short: "Generate DDL for a schema document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := loadSchema(args[0])
			if err != nil {
				return err
			}

			kind, err := generator.ParseKind(kindName)
			if err != nil {
				return err
			}

			ids, err := resolveTables(&schema, tables)
			if err != nil {
				return err
			}

			sql, err := generator.Generate(schema, ids, kind, opts)
			if err != nil {
				return err
			}
			return writeOutput(outFile, sql)
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "create", "Statement kind: create, drop, insert, alter")
	cmd.Flags().StringVarP(&outFile, "output", "o", cfg.Output, "Output file for the SQL (default stdout)")
	cmd.Flags().StringSliceVarP(&tables, "tables", "t", nil, "Table names to generate for (default all)")
	cmd.Flags().BoolVar(&opts.IncludeDropStatements, "include-drops", false, "Emit drop statements before creation")
	cmd.Flags().BoolVar(&opts.IncludeComments, "comments", opts.IncludeComments, "Emit table and column comments")
	cmd.Flags().BoolVar(&opts.IncludeIndexes, "indexes", opts.IncludeIndexes, "Emit CREATE INDEX statements")
	cmd.Flags().BoolVar(&opts.IncludeConstraints, "constraints", opts.IncludeConstraints, "Emit foreign-key constraints")
	cmd.Flags().BoolVar(&opts.IncludeSampleData, "sample-data", false, "Emit one sample INSERT per table")
	cmd.Flags().BoolVar(&opts.FormatSQL, "format-sql", opts.FormatSQL, "Pretty-print the generated SQL")
	cmd.Flags().BoolVar(&opts.CreateDatabase, "create-database", false, "Emit a database creation preamble")
	cmd.Flags().BoolVar(&opts.UseIfNotExists, "if-not-exists", false, "Guard creates with IF NOT EXISTS and drops with IF EXISTS")
	return cmd
}

// resolveTables maps table names from the command line to table ids.
func resolveTables(schema *model.Schema, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(names))
	for _, name := range names {
		t := schema.FindTable(name)
		if t == nil {
			return nil, fmt.Errorf("unknown table %q", name)
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func validateCmd(cfg config.Config) *cobra.Command {
	var (
		format  string
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "validate <schema.json|schema.toml>",
		Short: "Validate a schema document and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := loadSchema(args[0])
			if err != nil {
				return err
			}

			formatter, err := output.NewFormatter(format)
			if err != nil {
				return err
			}

			issues := validator.Validate(schema)
			report := validator.NewReport(&schema, issues, time.Now().UTC())
			rendered, err := formatter.FormatReport(report)
			if err != nil {
				return err
			}
			if err := writeOutput(outFile, rendered); err != nil {
				return err
			}
			if report.Stats.Errors > 0 {
				return fmt.Errorf("%d validation errors", report.Stats.Errors)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", cfg.Format, "Report format: text or json")
	cmd.Flags().StringVarP(&outFile, "output", "o", cfg.Output, "Output file for the report (default stdout)")
	return cmd
}

func importCmd(cfg config.Config) *cobra.Command {
	var (
		outFile string
		name    string
		engine  string
		asTOML  bool
	)

	cmd := &cobra.Command{
		Use:   "import <dump.sql>",
		Short: "Import a MySQL dump into a schema document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := mysqlparser.NewParser().ParseFile(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				schema.Name = name
			}
			if schema.Name == "" {
				schema.Name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			if !model.IsValidEngine(engine) {
				return fmt.Errorf("unsupported engine %q", engine)
			}
			schema.Engine = model.Engine(strings.ToLower(engine))

			schema = model.New(schema).Snapshot()
			return writeSchema(schema, outFile, asTOML)
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", cfg.Output, "Output file for the schema document (default stdout)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Schema name (default derived from the dump file)")
	cmd.Flags().StringVarP(&engine, "engine", "e", cfg.Engine, "Target engine for the imported schema")
	cmd.Flags().BoolVar(&asTOML, "toml", false, "Write the schema document as TOML instead of JSON")
	return cmd
}

func convertCmd(cfg config.Config) *cobra.Command {
	var (
		outFile string
		asTOML  bool
	)

	cmd := &cobra.Command{
		Use:   "convert <schema.json|schema.toml>",
		Short: "Convert a schema document between JSON and TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := loadSchema(args[0])
			if err != nil {
				return err
			}
			return writeSchema(schema, outFile, asTOML)
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", cfg.Output, "Output file for the schema document (default stdout)")
	cmd.Flags().BoolVar(&asTOML, "toml", false, "Write the schema document as TOML instead of JSON")
	return cmd
}

func writeSchema(schema model.Schema, outFile string, asTOML bool) error {
	var (
		data []byte
		err  error
	)
	if asTOML {
		data, err = tomlparser.Marshal(schema)
	} else {
		data, err = document.MarshalSchema(schema)
	}
	if err != nil {
		return err
	}
	return writeOutput(outFile, string(data))
}
