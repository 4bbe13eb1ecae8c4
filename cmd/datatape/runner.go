package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arundhati-c/datatapevalidation/pkg/codes"
	"github.com/arundhati-c/datatapevalidation/pkg/config"
	"github.com/arundhati-c/datatapevalidation/pkg/ev5/parser"
	"github.com/arundhati-c/datatapevalidation/pkg/ev5/report"
	"github.com/arundhati-c/datatapevalidation/pkg/ev5/validator"
	"github.com/arundhati-c/datatapevalidation/pkg/export"
	"github.com/arundhati-c/datatapevalidation/pkg/schema"
	"github.com/arundhati-c/datatapevalidation/pkg/storage"
	"github.com/arundhati-c/datatapevalidation/pkg/telemetry/metrics"
)

// tapeSummary is the per-tape outcome surfaced to the console or as
// JSON.
type tapeSummary struct {
	Tape          string           `json:"tape"`
	RunID         string           `json:"run_id,omitempty"`
	CheckedFields int              `json:"checked_fields"`
	FindingCount  int              `json:"finding_count"`
	ReportPath    string           `json:"report_path,omitempty"`
	Findings      []report.Finding `json:"findings,omitempty"`
}

// tapeRunner validates tapes with a fixed schema, code index and
// policy. It is shared by the validate and watch commands.
type tapeRunner struct {
	cfg       *config.Config
	schema    schema.Schema
	opts      validator.Options
	collector *metrics.Collector
	history   storage.Storage
	logger    *slog.Logger
}

// ValidateTape parses and validates one tape, records metrics and
// history, and writes the CSV report when findings exist.
func (r *tapeRunner) ValidateTape(ctx context.Context, path string, idx codes.Index) (*tapeSummary, error) {
	start := time.Now()

	p := parser.NewParser().
		WithMaxFileSize(r.cfg.Validation.MaxFileSize).
		WithDecodeErrorHandler(func(fileLine int, err error) {
			r.logger.Warn("dropped undecodable line",
				"tape", path,
				"file_line", fileLine,
				"error", err,
			)
		})

	doc, err := p.Parse(path)
	if err != nil {
		if r.collector != nil {
			r.collector.Validation().RecordError()
		}
		return nil, err
	}

	result := validator.New(r.opts).Validate(doc, r.schema, idx)
	duration := time.Since(start)

	if r.collector != nil {
		r.collector.Validation().RecordRun(result, duration)
	}

	summary := &tapeSummary{
		Tape:          filepath.Base(path),
		CheckedFields: result.CheckedFields,
		FindingCount:  len(result.Findings),
		Findings:      result.Findings,
	}

	if result.Invalid() {
		reportPath, err := r.writeReport(ctx, path, result)
		if err != nil {
			return nil, err
		}
		summary.ReportPath = reportPath
	}

	if r.history != nil {
		run := &storage.RunRecord{
			ID:            uuid.NewString(),
			Tape:          filepath.Base(path),
			RunTime:       time.Now(),
			CheckedFields: result.CheckedFields,
			Findings:      result.Findings,
		}
		if err := r.history.RecordRun(ctx, run); err != nil {
			// History is auxiliary; a failed write must not fail the
			// validation itself.
			r.logger.Error("failed to record run history", "tape", path, "error", err)
		} else {
			summary.RunID = run.ID
		}
	}

	r.logger.Info("tape validated",
		"tape", summary.Tape,
		"checked_fields", summary.CheckedFields,
		"findings", summary.FindingCount,
		"duration_ms", duration.Milliseconds(),
	)

	return summary, nil
}

// writeReport writes the findings CSV next to the configured output
// directory, named after the tape.
func (r *tapeRunner) writeReport(ctx context.Context, tapePath string, result report.Result) (string, error) {
	outDir := r.cfg.Report.OutputDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory %q: %w", outDir, err)
	}

	stem := strings.TrimSuffix(filepath.Base(tapePath), filepath.Ext(tapePath))
	outPath := filepath.Join(outDir, stem+"_schema_validated.csv")

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report %q: %w", outPath, err)
	}
	defer f.Close()

	exporter := export.NewReportExporter(*r.cfg.Report.IncludeHeader)
	if err := exporter.Export(ctx, result, f); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to flush report %q: %w", outPath, err)
	}

	return outPath, nil
}

// collectTapes resolves the list of tapes to validate: explicit files
// if given, otherwise every .ev5 file under the data directory.
func collectTapes(files []string, dataDir string) ([]string, error) {
	if len(files) > 0 {
		return files, nil
	}

	var tapes []string
	err := filepath.WalkDir(dataDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".ev5") {
			tapes = append(tapes, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %q for tapes: %w", dataDir, err)
	}
	return tapes, nil
}
