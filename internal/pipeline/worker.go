package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/prdgest/internal/parser"
	"github.com/dgallion1/prdgest/internal/prd"
)

// Worker processes a single document job.
type Worker struct {
	jobs  *JobStore
	stats *Stats
	log   *slog.Logger
	opts  parser.Options
}

func NewWorker(jobs *JobStore, stats *Stats, log *slog.Logger, opts parser.Options) *Worker {
	return &Worker{
		jobs:  jobs,
		stats: stats,
		log:   log,
		opts:  opts,
	}
}

// Process converts the uploaded file, then parses it unless an earlier job
// already produced a result for the same converted text.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Convert
	job.SetStatus(StatusConverting, "converting")
	text, err := parser.Convert(bytes.NewReader(job.FileData()), job.Filename, w.opts)
	if err != nil {
		log.Error("convert failed", "error", err)
		job.Fail("converting", fmt.Errorf("convert: %w", err))
		return
	}

	hash := ContentHashHex([]byte(text))
	job.setContentHash(hash)

	// Phase 1.5: Dedup check
	if orig := w.jobs.FindCompleted(hash); orig != nil && orig.ID != job.ID {
		if result, ok := orig.Result(); ok {
			log.Info("duplicate document, reusing result", "original_job_id", orig.ID)
			job.Complete(result, orig.ID)
			return
		}
	}

	if err := ctx.Err(); err != nil {
		job.Fail("parsing", err)
		return
	}

	// Phase 2: Parse
	job.SetStatus(StatusParsing, "parsing")
	result, err := timedParse(w.stats, text)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.Fail("parsing", err)
		return
	}

	w.jobs.IndexHash(hash, job.ID)
	job.Complete(result, "")
	log.Info("parse complete",
		"project_name", result.ProjectName,
		"features", result.FeatureCount(),
		"tech_stack", len(result.TechStack),
	)
}

func timedParse(stats *Stats, text string) (prd.ParsedPRD, error) {
	start := time.Now()
	result, err := prd.Parse(text)
	stats.Record(time.Since(start), err != nil)
	return result, err
}
