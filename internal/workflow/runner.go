package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"quizprep/internal/config"
	"quizprep/internal/logging"
	"quizprep/internal/preflight"
	"quizprep/internal/stage"
)

// ErrLocked is returned when another run holds the work directory lock.
var ErrLocked = errors.New("work directory is locked by another run")

// Report summarizes a run.
type Report struct {
	RunID    string         `json:"run_id"`
	Results  []stage.Result `json:"results"`
	Duration time.Duration  `json:"duration_ns"`
}

// Runner executes stage handlers sequentially under the work directory lock.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	handlers []stage.Handler
	newID    func() string
}

// NewRunner constructs a runner for the given handlers.
func NewRunner(cfg *config.Config, logger *slog.Logger, handlers ...stage.Handler) *Runner {
	return &Runner{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "workflow"),
		handlers: handlers,
		newID:    uuid.NewString,
	}
}

// Handlers returns the stages in execution order.
func (r *Runner) Handlers() []stage.Handler {
	return append([]stage.Handler(nil), r.handlers...)
}

// Run executes every handler in order. The report holds the results of the
// stages that completed, including when an error is returned.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	started := time.Now()
	report := Report{RunID: r.newID()}

	unlock, err := r.acquireLock()
	if err != nil {
		return report, err
	}
	defer unlock()

	if failed, ok := preflight.Failed(preflight.RunAll(ctx, r.cfg)); ok {
		return report, stage.Wrap(stage.ErrConfiguration, "workflow", "preflight", failed.Name+": "+failed.Detail, nil)
	}

	ctx = stage.WithRunID(ctx, report.RunID)
	runLogger := logging.WithContext(ctx, r.logger)
	runLogger.Debug("run started",
		logging.Int("stages", len(r.handlers)),
		logging.String("work_dir", r.cfg.Paths.WorkDir),
	)

	for _, handler := range r.handlers {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		result, err := r.runStage(ctx, handler)
		if err != nil {
			report.Duration = time.Since(started)
			return report, err
		}
		report.Results = append(report.Results, result)
	}

	report.Duration = time.Since(started)
	runLogger.Debug("run completed", logging.Duration("duration", report.Duration))
	return report, nil
}

func (r *Runner) runStage(ctx context.Context, handler stage.Handler) (stage.Result, error) {
	ctx = stage.WithStage(ctx, handler.Name())
	logger := logging.WithContext(ctx, r.logger)

	logger.Info("stage started", logging.Args(logging.Event(logging.EventStageStart))...)
	result, err := handler.Run(ctx)
	if err != nil {
		logging.ErrorWithContext(logger, "stage failed", logging.EventStageFailed,
			logging.Error(err),
			logging.String(logging.FieldErrorKind, stage.Kind(err)),
			logging.Hint(hintFor(err)),
		)
		return stage.Result{}, err
	}

	attrs := []logging.Attr{
		logging.Event(logging.EventStageComplete),
		logging.Int("records", result.Records),
		logging.String("output", result.Output),
		logging.Duration("duration", result.Duration),
	}
	if handler.Name() == stage.NameJoin || handler.Name() == stage.NameExport {
		attrs = append(attrs, logging.Int("matched", result.Matched), logging.Int("unmatched", result.Unmatched))
	}
	if result.Repaired > 0 {
		attrs = append(attrs, logging.Int("repaired", result.Repaired))
	}
	if result.Duplicates > 0 {
		attrs = append(attrs, logging.Int("duplicates", result.Duplicates))
	}
	logger.Info("stage completed", logging.Args(attrs...)...)
	return result, nil
}

func (r *Runner) acquireLock() (func(), error) {
	path := r.cfg.Paths.LockFile
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, stage.Wrap(stage.ErrIO, "workflow", "prepare lock", path, err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, stage.Wrap(stage.ErrIO, "workflow", "acquire lock", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release lock", logging.Args(logging.String("lock", path), logging.Error(err))...)
		}
	}, nil
}

func hintFor(err error) string {
	switch stage.Kind(err) {
	case "validation":
		return "fix the reported record in the input file and rerun"
	case "io":
		return "check that the input exists and the work directory is writable"
	case "configuration":
		return "run quizprep config validate"
	default:
		return "check logs for details"
	}
}
