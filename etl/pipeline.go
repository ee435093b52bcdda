package etl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Job names used in logs and metrics.
const (
	JobSynthetic = "synthetic"
	JobCSV       = "csv"
)

// ErrSource wraps failures to read the rows of a run, as opposed to failures
// of the store.
var ErrSource = errors.New("read source rows")

// RowGenerator produces synthetic source rows.
type RowGenerator interface {
	Generate(ctx context.Context, n int) ([]Row, error)
}

// ComplaintCounter reports the current number of stored complaints.
type ComplaintCounter interface {
	Count(ctx context.Context) (int64, error)
}

// RunResult is a load Result plus the observed change in the table size.
type RunResult struct {
	Result
	Added int64 `json:"added"`
}

// Pipeline wires extract, transform and load together.
type Pipeline struct {
	gen     RowGenerator
	loader  *Loader
	counter ComplaintCounter
	metrics *Metrics
	log     *zap.Logger
	now     func() time.Time
}

func NewPipeline(gen RowGenerator, loader *Loader, counter ComplaintCounter, metrics *Metrics, log *zap.Logger) *Pipeline {
	return &Pipeline{
		gen:     gen,
		loader:  loader,
		counter: counter,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

// RunSynthetic generates n rows and loads them.
func (p *Pipeline) RunSynthetic(ctx context.Context, n int) (RunResult, error) {
	return p.run(ctx, JobSynthetic, func(ctx context.Context) ([]Row, error) {
		return p.gen.Generate(ctx, n)
	})
}

// ImportCSV loads the rows of a CSV file. A missing file adds nothing.
func (p *Pipeline) ImportCSV(ctx context.Context, path string) (RunResult, error) {
	return p.run(ctx, JobCSV, func(context.Context) ([]Row, error) {
		return ExtractFile(path)
	})
}

func (p *Pipeline) run(ctx context.Context, job string, extract func(context.Context) ([]Row, error)) (out RunResult, err error) {
	out.Result = newResult()
	log := p.log.With(zap.String("job", job))
	defer func() { p.metrics.ObserveRun(job, out.Result, err) }()

	before, err := p.counter.Count(ctx)
	if err != nil {
		return out, fmt.Errorf("count complaints: %w", err)
	}

	rows, err := extract(ctx)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrSource, err)
	}
	log.Info("extracted rows", zap.Int("rows", len(rows)))
	if len(rows) == 0 {
		return out, nil
	}

	records := Transform(rows, p.now())
	log.Info("transformed rows", zap.Int("rows", len(records)))

	res, loadErr := p.loader.Load(ctx, records)
	out.Result = res
	if loadErr != nil {
		return out, fmt.Errorf("load: %w", loadErr)
	}

	after, err := p.counter.Count(ctx)
	if err != nil {
		return out, fmt.Errorf("count complaints: %w", err)
	}
	out.Added = after - before

	log.Info("pipeline finished",
		zap.Int64("added", out.Added),
		zap.Int("inserted", res.Inserted),
		zap.Int("skipped", res.Skipped),
	)
	return out, nil
}
