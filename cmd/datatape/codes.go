package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/arundhati-c/datatapevalidation/pkg/cli"
	"github.com/arundhati-c/datatapevalidation/pkg/codes"
	"github.com/arundhati-c/datatapevalidation/pkg/config"
	"github.com/arundhati-c/datatapevalidation/pkg/export"
	"github.com/arundhati-c/datatapevalidation/pkg/telemetry/logging"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Manage the valid code catalog",
	Long: `Fetch and export the valid code catalog used for validation.

The catalog is sourced from the NHTSA ncodes API. Snapshots written by
'codes fetch' can be fed back to 'datatape validate --codes-file' for
offline or pinned-catalog validation.`,
}

var codesFetchFlags struct {
	out string
}

var codesFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the catalog and write a snapshot CSV",
	Long: `Fetch the valid code catalog from the API and write it as a flat
CodeName/Code/Description snapshot.

The snapshot lands in the configured snapshot directory, named
valid_codes_<YYYYMMDD>.csv, unless --out says otherwise.`,
	RunE: runCodesFetch,
}

var codesExportFlags struct {
	out       string
	codesFile string
	tsv       bool
}

var codesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as a dropdown grid",
	Long: `Export the valid code catalog as a spreadsheet-friendly grid: one
column per field type, the allowed codes listed beneath, shorter
columns padded with empty cells. Spreadsheet dropdown data ranges can
point at the columns directly.

The catalog is fetched from the API unless --codes-file points at a
snapshot written by 'codes fetch'.`,
	RunE: runCodesExport,
}

func init() {
	rootCmd.AddCommand(codesCmd)
	codesCmd.AddCommand(codesFetchCmd)
	codesCmd.AddCommand(codesExportCmd)

	codesFetchCmd.Flags().StringVarP(&codesFetchFlags.out, "out", "o", "", "snapshot path (default: <snapshot_dir>/valid_codes_<YYYYMMDD>.csv)")

	codesExportCmd.Flags().StringVarP(&codesExportFlags.out, "out", "o", "valid_codes_dropdown.csv", "grid output path")
	codesExportCmd.Flags().StringVar(&codesExportFlags.codesFile, "codes-file", "", "catalog snapshot CSV (default: fetch from API)")
	codesExportCmd.Flags().BoolVar(&codesExportFlags.tsv, "tsv", false, "write tab-separated output")
}

func runCodesFetch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setupCodesCommand("cmd.codes.fetch")
	if err != nil {
		return err
	}

	ctx := context.Background()
	client := codes.NewClient(codes.ClientConfig{
		URL:     cfg.Catalog.URL,
		Timeout: cfg.Catalog.Timeout,
	})

	records, err := client.Fetch(ctx)
	if err != nil {
		return cli.NewCommandError("codes fetch", err)
	}

	outPath := codesFetchFlags.out
	if outPath == "" {
		name := fmt.Sprintf("valid_codes_%s.csv", time.Now().Format("20060102"))
		outPath = filepath.Join(cfg.Catalog.SnapshotDir, name)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return cli.NewCommandError("codes fetch", fmt.Errorf("failed to create snapshot directory: %w", err))
	}

	f, err := os.Create(outPath)
	if err != nil {
		return cli.NewCommandError("codes fetch", fmt.Errorf("failed to create snapshot %q: %w", outPath, err))
	}
	defer f.Close()

	if err := export.NewCatalogExporter().ExportSnapshot(ctx, records, f); err != nil {
		return cli.NewCommandError("codes fetch", err)
	}
	if err := f.Close(); err != nil {
		return cli.NewCommandError("codes fetch", fmt.Errorf("failed to flush snapshot %q: %w", outPath, err))
	}

	logger.Info("catalog snapshot written", "path", outPath, "records", len(records))
	fmt.Printf("Wrote %d catalog records to %s\n", len(records), outPath)
	return nil
}

func runCodesExport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setupCodesCommand("cmd.codes.export")
	if err != nil {
		return err
	}

	ctx := context.Background()

	var records []codes.CatalogRecord
	if codesExportFlags.codesFile != "" {
		records, err = codes.LoadSnapshot(codesExportFlags.codesFile)
	} else {
		client := codes.NewClient(codes.ClientConfig{
			URL:     cfg.Catalog.URL,
			Timeout: cfg.Catalog.Timeout,
		})
		records, err = client.Fetch(ctx)
	}
	if err != nil {
		return cli.NewCommandError("codes export", err)
	}

	idx := codes.BuildIndex(records)
	if len(idx) == 0 {
		return cli.NewCommandError("codes export",
			cli.NewPreconditionError("code catalog", "no field types with codes; nothing to export"))
	}

	f, err := os.Create(codesExportFlags.out)
	if err != nil {
		return cli.NewCommandError("codes export", fmt.Errorf("failed to create grid %q: %w", codesExportFlags.out, err))
	}
	defer f.Close()

	exporter := export.NewCatalogExporter()
	if codesExportFlags.tsv {
		exporter.Comma = '\t'
	}
	if err := exporter.ExportGrid(ctx, idx, f); err != nil {
		return cli.NewCommandError("codes export", err)
	}
	if err := f.Close(); err != nil {
		return cli.NewCommandError("codes export", fmt.Errorf("failed to flush grid %q: %w", codesExportFlags.out, err))
	}

	logger.Info("catalog grid written", "path", codesExportFlags.out, "field_types", len(idx))
	fmt.Printf("Wrote dropdown grid for %d field types to %s\n", len(idx), codesExportFlags.out)
	return nil
}

// setupCodesCommand loads config and logging shared by the codes
// subcommands.
func setupCodesCommand(component string) (*config.Config, *slog.Logger, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if _, err := logging.Setup(cfg.Telemetry.Logging, os.Stderr); err != nil {
		return nil, nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return cfg, slog.Default().With("component", component), nil
}
