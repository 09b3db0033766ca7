// Package batch aligns many SQL files in one run. Files are processed in
// parallel, every successful result is stored in a zip archive under a
// configurable prefix, and a per-file report records what happened.
package batch

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sqlalign/internal/align"
	"sqlalign/internal/config"
	"sqlalign/internal/core"
	"sqlalign/internal/output"
)

// ArchiveSuffix follows the prefix in the archive file name.
const ArchiveSuffix = "sql_files.zip"

// File is one input: its display name and raw bytes.
type File struct {
	Name string
	Data []byte
}

// FileError records why a single file could not be processed.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("batch: %s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Options controls a batch run.
type Options struct {
	Prefix  string
	Workers int // 0 means one per CPU
	Decode  config.DecodeMode
	Align   core.AlignOptions
}

// OptionsFromConfig builds Options from the [batch] and [align] sections.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Prefix:  cfg.Batch.Prefix,
		Workers: cfg.Batch.Workers,
		Decode:  cfg.Batch.Decode,
		Align:   cfg.AlignOptions(),
	}
}

// Result is the outcome of Process. Report and Errors keep input order.
type Result struct {
	Report  *core.BatchReport
	Archive []byte
	Summary string
	Errors  []*FileError
}

// Processor runs batches. It is safe for concurrent use.
type Processor struct {
	opts   Options
	logger *zap.Logger
}

// NewProcessor returns a Processor. A nil logger disables logging.
func NewProcessor(opts Options, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{opts: opts, logger: logger}
}

// ArchiveName returns the file name the archive should be saved under.
func (p *Processor) ArchiveName() string {
	return p.opts.Prefix + ArchiveSuffix
}

type outcome struct {
	aligned string
	report  core.FileReport
	err     error
}

// Process aligns files. A failing file is recorded in the result and does
// not stop the others; only cancellation of ctx or an archive write error
// fails the whole run.
func (p *Processor) Process(ctx context.Context, files []File) (*Result, error) {
	runID := uuid.NewString()
	log := p.logger.With(zap.String("run_id", runID))
	start := time.Now()

	workers := p.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]outcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = p.processFile(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	report := &core.BatchReport{
		RunID:   runID,
		Archive: p.ArchiveName(),
		Files:   make([]core.FileReport, 0, len(files)),
	}
	var errs []*FileError

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, o := range outcomes {
		report.Files = append(report.Files, o.report)
		if o.err != nil {
			fe := &FileError{Name: o.report.Name, Err: o.err}
			errs = append(errs, fe)
			log.Warn("file failed", zap.String("file", o.report.Name), zap.Error(o.err))
			continue
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     o.report.AlignedName,
			Method:   zip.Deflate,
			Modified: start,
		})
		if err != nil {
			return nil, fmt.Errorf("batch: archive %s: %w", o.report.AlignedName, err)
		}
		if _, err := w.Write([]byte(o.aligned)); err != nil {
			return nil, fmt.Errorf("batch: archive %s: %w", o.report.AlignedName, err)
		}
		log.Debug("file aligned",
			zap.String("file", o.report.Name),
			zap.Int("original_lines", o.report.OriginalLines),
			zap.String("checksum", o.report.Checksum))
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("batch: close archive: %w", err)
	}

	log.Info("batch complete",
		zap.Int("files", len(files)),
		zap.Int("succeeded", report.Succeeded()),
		zap.Duration("elapsed", time.Since(start)))

	return &Result{
		Report:  report,
		Archive: buf.Bytes(),
		Summary: output.Summary(report),
		Errors:  errs,
	}, nil
}

func (p *Processor) processFile(f File) outcome {
	text, err := Decode(f.Data, p.opts.Decode)
	if err != nil {
		return outcome{
			report: core.FileReport{Name: f.Name, Error: err.Error()},
			err:    err,
		}
	}

	aligned := align.Align(text, p.opts.Align)
	return outcome{
		aligned: aligned,
		report: core.FileReport{
			Name:          f.Name,
			AlignedName:   p.opts.Prefix + f.Name,
			OriginalLines: align.ComputeStats(text).TotalLines,
			Checksum:      fmt.Sprintf("%016x", xxh3.HashString(aligned)),
		},
	}
}
