package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arundhati-c/datatapevalidation/pkg/cli"
	"github.com/arundhati-c/datatapevalidation/pkg/codes"
	"github.com/arundhati-c/datatapevalidation/pkg/config"
	"github.com/arundhati-c/datatapevalidation/pkg/ev5/validator"
	"github.com/arundhati-c/datatapevalidation/pkg/schema"
	"github.com/arundhati-c/datatapevalidation/pkg/storage"
	"github.com/arundhati-c/datatapevalidation/pkg/telemetry/logging"
	"github.com/arundhati-c/datatapevalidation/pkg/telemetry/metrics"
)

var validateFlags struct {
	files           []string
	schemaPath      string
	codesFile       string
	checkFieldTypes bool
	noCheckCodes    bool
	history         bool
	format          string
	maxShown        int
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate EV5 data tapes",
	Long: `Validate EV5 data tapes against the field-position schema and the
valid code catalog.

Each tape is parsed into blocks, every record's pipe-delimited columns
are mapped to the schema's declared positions, and each extracted value
is checked against the catalog. Invalid fields are written to a CSV
report named after the tape.

The catalog is fetched from the NHTSA API unless --codes-file points at
a previously written snapshot.

Examples:
  # Validate everything under the data directory
  datatape validate

  # Validate specific tapes
  datatape validate --file a.ev5 --file b.ev5

  # Use a cached catalog snapshot instead of the live API
  datatape validate --codes-file valid_codes_20260826.csv

  # Also flag schema fields the catalog does not know
  datatape validate --check-field-types

  # JSON summaries for CI
  datatape validate --format json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringArrayVarP(&validateFlags.files, "file", "f", nil, "tape file to validate (repeatable; default: scan data dir)")
	validateCmd.Flags().StringVar(&validateFlags.schemaPath, "schema", "", "schema file (overrides config)")
	validateCmd.Flags().StringVar(&validateFlags.codesFile, "codes-file", "", "catalog snapshot CSV (default: fetch from API)")
	validateCmd.Flags().BoolVar(&validateFlags.checkFieldTypes, "check-field-types", false, "flag field types missing from the catalog")
	validateCmd.Flags().BoolVar(&validateFlags.noCheckCodes, "no-check-codes", false, "skip code membership checks")
	validateCmd.Flags().BoolVar(&validateFlags.history, "history", false, "record runs in the SQLite history database")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
	validateCmd.Flags().IntVar(&validateFlags.maxShown, "max-shown", 10, "findings printed per tape in text mode")
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(validateFlags.format)
	if err != nil {
		return err
	}

	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()
	applyValidateFlags(cfg)

	if _, err := logging.Setup(cfg.Telemetry.Logging, os.Stderr); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	logger := slog.Default().With("component", "cmd.validate")

	sch, err := schema.Load(cfg.Validation.SchemaPath)
	if err != nil {
		return cli.NewConfigError("validation.schema_path", err.Error())
	}

	ctx := context.Background()
	idx, err := loadIndex(ctx, cfg)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	tapes, err := collectTapes(validateFlags.files, cfg.Validation.DataDir)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}
	if len(tapes) == 0 {
		return cli.NewPreconditionError("data directory", fmt.Sprintf("no .ev5 files found in %q", cfg.Validation.DataDir))
	}

	runner := &tapeRunner{
		cfg:    cfg,
		schema: sch,
		opts: validator.Options{
			ValidateFieldTypes: cfg.Validation.CheckFieldTypes,
			ValidateCodes:      *cfg.Validation.CheckCodes,
		},
		logger: logger,
	}

	if *cfg.Telemetry.Metrics.Enabled {
		runner.collector = metrics.NewCollector(cfg.Telemetry.Metrics, nil)
	}

	if cfg.History.Enabled {
		store, err := openHistory(cfg)
		if err != nil {
			return cli.NewCommandError("validate", err)
		}
		defer store.Close()
		runner.history = store
	}

	if format == cli.FormatText {
		fmt.Printf("Found %d tape(s) to validate.\n", len(tapes))
	}

	var summaries []*tapeSummary
	invalidTapes := 0
	for _, tape := range tapes {
		summary, err := runner.ValidateTape(ctx, tape, idx)
		if err != nil {
			return cli.NewCommandError("validate", fmt.Errorf("tape %q: %w", tape, err))
		}
		summaries = append(summaries, summary)
		if summary.FindingCount > 0 {
			invalidTapes++
		}

		if format == cli.FormatText {
			printTapeSummary(summary)
		}
	}

	if format == cli.FormatJSON {
		return cli.NewFormatter(format).FormatTo(os.Stdout, summaries)
	}

	fmt.Println()
	if invalidTapes == 0 {
		fmt.Println("All coded fields valid.")
	} else {
		fmt.Printf("%d of %d tape(s) had invalid fields.\n", invalidTapes, len(tapes))
	}
	return nil
}

// applyValidateFlags folds command-line flags over the loaded config.
// Flags always win.
func applyValidateFlags(cfg *config.Config) {
	if validateFlags.schemaPath != "" {
		cfg.Validation.SchemaPath = validateFlags.schemaPath
	}
	if validateFlags.checkFieldTypes {
		cfg.Validation.CheckFieldTypes = true
	}
	if validateFlags.noCheckCodes {
		cfg.Validation.CheckCodes = config.Bool(false)
	}
	if validateFlags.history {
		cfg.History.Enabled = true
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
}

// loadIndex builds the code index from the snapshot file or the live
// API. An empty index means there is nothing to validate against; the
// run aborts rather than silently passing every tape.
func loadIndex(ctx context.Context, cfg *config.Config) (codes.Index, error) {
	var records []codes.CatalogRecord
	var err error

	if validateFlags.codesFile != "" {
		records, err = codes.LoadSnapshot(validateFlags.codesFile)
	} else {
		client := codes.NewClient(codes.ClientConfig{
			URL:     cfg.Catalog.URL,
			Timeout: cfg.Catalog.Timeout,
		})
		records, err = client.Fetch(ctx)
	}
	if err != nil {
		return nil, err
	}

	idx := codes.BuildIndex(records)
	if len(idx) == 0 {
		return nil, cli.NewPreconditionError("code catalog", "no field types with codes; nothing to validate against")
	}
	return idx, nil
}

// openHistory opens the configured SQLite history backend.
func openHistory(cfg *config.Config) (storage.Storage, error) {
	return storage.NewSQLiteStorage(&storage.SQLiteConfig{
		Path:         cfg.History.SQLite.Path,
		MaxOpenConns: cfg.History.SQLite.MaxOpenConns,
		MaxIdleConns: cfg.History.SQLite.MaxIdleConns,
		WALMode:      *cfg.History.SQLite.WALMode,
		BusyTimeout:  cfg.History.SQLite.BusyTimeout,
	})
}

// printTapeSummary prints the per-tape console block: checked count,
// invalid count, a capped preview of findings, and the report location.
func printTapeSummary(summary *tapeSummary) {
	fmt.Printf("\nProcessing %s...\n", summary.Tape)
	fmt.Printf("  Checked %d coded fields.\n", summary.CheckedFields)
	fmt.Printf("  Invalid entries: %d\n", summary.FindingCount)

	if summary.FindingCount == 0 {
		fmt.Println("  All coded fields valid.")
		return
	}

	shown := 0
	for _, f := range summary.Findings {
		if shown >= validateFlags.maxShown {
			break
		}
		fmt.Printf("    %s.%s = %s\n", f.Block, f.Field, f.Value)
		shown++
	}
	if remaining := summary.FindingCount - shown; remaining > 0 {
		fmt.Printf("    ...and %d more.\n", remaining)
	}
	if summary.ReportPath != "" {
		fmt.Printf("  Report written to %s\n", summary.ReportPath)
	}
}
