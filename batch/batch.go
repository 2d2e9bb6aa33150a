// Package batch runs the outline pipeline over a directory of
// documents. Documents are processed one at a time, start to finish,
// and each input file produces one JSON result file in the output
// directory. A document that fails still produces a result file with
// a degraded record, so one bad input never stops the run.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/titulus"
	"github.com/tsawler/titulus/catalog"
	"github.com/tsawler/titulus/format"
	"github.com/tsawler/titulus/htmlspan"
	"github.com/tsawler/titulus/markspan"
	"github.com/tsawler/titulus/model"
	"github.com/tsawler/titulus/span"
	"github.com/tsawler/titulus/spanio"
)

// DegradedTitle is the title written when a document cannot be
// decoded or processed. The outline in a degraded record is empty.
const DegradedTitle = "Error Processing Document"

// Options configures a Processor. Logger may be nil for silent
// operation and Catalog may be nil to skip run recording. A zero
// Pipeline runs every stage with its defaults.
type Options struct {
	InputDir  string
	OutputDir string
	Pipeline  titulus.Config
	Logger    *zap.Logger
	Catalog   *catalog.Catalog
}

// Summary reports what a batch run did.
type Summary struct {
	Processed int
	Failed    int
	Skipped   int
	Duration  time.Duration
}

// Total returns the number of documents that produced a result file.
func (s Summary) Total() int {
	return s.Processed + s.Failed
}

// Processor scans a directory for supported documents and writes one
// outline result per input.
type Processor struct {
	inputDir  string
	outputDir string
	pipeline  titulus.Config
	log       *zap.Logger
	cat       *catalog.Catalog
}

// New returns a Processor for the given options.
func New(opts Options) *Processor {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		inputDir:  opts.InputDir,
		outputDir: opts.OutputDir,
		pipeline:  opts.Pipeline,
		log:       log,
		cat:       opts.Catalog,
	}
}

// Run processes every supported document in the input directory in
// name order and writes <stem>.json per input to the output
// directory. Unsupported files are counted as skipped. Run stops
// early only when ctx is cancelled; per-document failures are
// recorded in the summary and in degraded result files.
func (p *Processor) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	var sum Summary

	entries, err := os.ReadDir(p.inputDir)
	if err != nil {
		return sum, fmt.Errorf("batch: reading input directory: %w", err)
	}
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return sum, fmt.Errorf("batch: creating output directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if format.Detect(entry.Name()) == format.Unknown {
			sum.Skipped++
			continue
		}
		files = append(files, entry.Name())
	}

	if len(files) == 0 {
		p.log.Info("no supported documents found",
			zap.String("input", p.inputDir))
		sum.Duration = time.Since(start)
		return sum, nil
	}

	p.log.Info("processing documents",
		zap.Int("count", len(files)),
		zap.String("input", p.inputDir),
		zap.String("output", p.outputDir))

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			sum.Duration = time.Since(start)
			return sum, fmt.Errorf("batch: %w", err)
		}
		p.processOne(name, &sum)
	}

	sum.Duration = time.Since(start)
	return sum, nil
}

// processOne extracts one document and writes its result file. A
// pipeline failure produces a degraded record; a write failure falls
// back to an error record carrying the message.
func (p *Processor) processOne(name string, sum *Summary) {
	inPath := filepath.Join(p.inputDir, name)
	outName := strings.TrimSuffix(name, filepath.Ext(name)) + ".json"
	outPath := filepath.Join(p.outputDir, outName)

	start := time.Now()
	result, procErr := p.extract(inPath)
	if procErr != nil {
		result = &model.Result{Title: DegradedTitle, Outline: []model.Heading{}}
	}

	writeErr := spanio.WriteResult(outPath, result)
	if writeErr != nil {
		record := &model.Result{
			Title:   "Error: " + writeErr.Error(),
			Outline: []model.Heading{},
		}
		if err := spanio.WriteResult(outPath, record); err != nil {
			p.log.Error("writing error record failed",
				zap.String("output", outPath),
				zap.Error(err))
		}
	}

	elapsed := time.Since(start)

	var runErr string
	switch {
	case procErr != nil:
		runErr = procErr.Error()
		sum.Failed++
		p.log.Error("processing failed",
			zap.String("input", name),
			zap.Duration("duration", elapsed),
			zap.Error(procErr))
	case writeErr != nil:
		runErr = writeErr.Error()
		sum.Failed++
		p.log.Error("writing result failed",
			zap.String("input", name),
			zap.String("output", outName),
			zap.Duration("duration", elapsed),
			zap.Error(writeErr))
	default:
		sum.Processed++
		p.log.Info("processed document",
			zap.String("input", name),
			zap.String("output", outName),
			zap.String("title", result.Title),
			zap.Int("headings", result.HeadingCount()),
			zap.Duration("duration", elapsed))
	}

	if p.cat != nil {
		_, err := p.cat.RecordRun(catalog.Run{
			InputFile:    name,
			Title:        result.Title,
			HeadingCount: result.HeadingCount(),
			Duration:     elapsed,
			Error:        runErr,
		})
		if err != nil {
			p.log.Warn("recording run failed",
				zap.String("input", name),
				zap.Error(err))
		}
	}
}

// extract opens one document and runs the pipeline on its spans.
func (p *Processor) extract(path string) (*model.Result, error) {
	src, err := OpenSource(path)
	if err != nil {
		return nil, err
	}
	return titulus.FromSource(src).WithConfig(p.pipeline).Result()
}

// OpenSource opens any supported document as a span source. The
// format comes from the file extension, falling back to content
// sniffing when the extension is unrecognized.
func OpenSource(path string) (span.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: reading %s: %w", path, err)
	}

	f := format.Detect(path)
	if f == format.Unknown {
		f = format.DetectFromMagic(data)
	}

	switch f {
	case format.SpanDump:
		spans, err := spanio.Decode(data)
		if err != nil {
			return nil, err
		}
		return span.NewSliceSource(spans), nil
	case format.HTML:
		return htmlspan.OpenReader(bytes.NewReader(data))
	case format.Markdown:
		return markspan.FromBytes(data), nil
	default:
		return nil, fmt.Errorf("batch: unsupported document format: %s", filepath.Base(path))
	}
}
