// Package agent drives the plan/generate/test loop that produces a working
// bank-statement parser. Each run plans once, then generates and tests code
// in bounded attempts, feeding accumulated failures back into generation so
// the model can self-correct.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/martinemde/parsegen/history"
	"github.com/martinemde/parsegen/llm"
	"github.com/martinemde/parsegen/pdftext"
	"github.com/martinemde/parsegen/sandbox"
	"github.com/martinemde/parsegen/statement"
)

// Phase names recorded per attempt.
const (
	PhasePlan     = "plan"
	PhaseGenerate = "generate"
	PhaseTest     = "test"
)

// CodeRunner executes generated parser code against statement text. Satisfied
// by sandbox.Executor.
type CodeRunner interface {
	Run(ctx context.Context, code string, text string) ([][]string, error)
}

// TextExtractor converts a statement PDF into line-oriented text.
type TextExtractor func(path string) (string, error)

// Config holds the per-run settings of an Agent.
type Config struct {
	Provider    string
	Model       string
	MaxAttempts int           // default 3
	ExecTimeout time.Duration // per sandbox run, default 10s
	LLMTimeout  time.Duration // per model call, default 2m
	DataDir     string
	ParserDir   string

	// Per-bank overrides, usually from a bank profile.
	PDFPath string
	CSVPath string
	Notes   string
}

// Result describes a successful run.
type Result struct {
	RunID      string
	Bank       string
	Attempts   int
	ParserPath string
	Plan       []string
}

// Agent runs the self-correcting codegen loop for one bank.
type Agent struct {
	client  *llm.Client
	runner  CodeRunner
	extract TextExtractor
	ledger  *history.Store
	emitter *EventEmitter
	log     *logrus.Logger
	config  Config
	runID   string
}

// Option configures an Agent.
type Option func(*Agent)

// WithRunner replaces the default sandbox executor.
func WithRunner(r CodeRunner) Option {
	return func(a *Agent) { a.runner = r }
}

// WithExtractor replaces the default PDF text extractor.
func WithExtractor(fn TextExtractor) Option {
	return func(a *Agent) { a.extract = fn }
}

// WithLedger records every attempt in the given history store.
func WithLedger(s *history.Store) Option {
	return func(a *Agent) { a.ledger = s }
}

// WithLogger replaces the default logger.
func WithLogger(log *logrus.Logger) Option {
	return func(a *Agent) { a.log = log }
}

// New creates an Agent for a single run.
func New(client *llm.Client, config Config, opts ...Option) *Agent {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.ExecTimeout <= 0 {
		config.ExecTimeout = 10 * time.Second
	}
	if config.LLMTimeout <= 0 {
		config.LLMTimeout = 2 * time.Minute
	}

	runID := uuid.New().String()
	a := &Agent{
		client:  client,
		runner:  sandbox.NewExecutor(),
		extract: pdftext.Extract,
		emitter: NewEventEmitter(runID, 256),
		log:     logrus.StandardLogger(),
		config:  config,
		runID:   runID,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunID returns the unique identifier of this run.
func (a *Agent) RunID() string { return a.runID }

// Events returns the run's event channel. Closed when Run returns.
func (a *Agent) Events() <-chan RunEvent { return a.emitter.Events() }

// Run executes the full loop for the named bank: resolve inputs, extract the
// statement text, plan once, then generate and test until the parser output
// matches the reference CSV or attempts run out. The generated parser is
// written to disk on every attempt, so the artifact of a failed run is the
// last (broken) candidate.
func (a *Agent) Run(ctx context.Context, bank string) (*Result, error) {
	defer a.emitter.Close()

	paths, err := ResolvePaths(a.config.DataDir, a.config.ParserDir, bank, a.config.PDFPath, a.config.CSVPath)
	if err != nil {
		return nil, err
	}

	schema, err := statement.Load(paths.CSV)
	if err != nil {
		return nil, err
	}

	text, err := a.extract(paths.PDF)
	if err != nil {
		return nil, fmt.Errorf("extract statement text: %w", err)
	}

	a.emitter.Emit(EventRunStart, map[string]interface{}{
		"bank":         bank,
		"pdf":          paths.PDF,
		"csv":          paths.CSV,
		"max_attempts": a.config.MaxAttempts,
	})
	a.log.WithFields(logrus.Fields{
		"run_id": a.runID,
		"bank":   bank,
		"pdf":    paths.PDF,
	}).Info("starting parser generation")

	var plan []string
	var previousErrors []string

	for attempt := 1; attempt <= a.config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, &llm.AbortError{SDKError: llm.SDKError{
				Message: "run cancelled",
				Cause:   ctx.Err(),
			}}
		}

		a.emitter.Emit(EventAttemptStart, map[string]interface{}{
			"attempt": attempt,
			"of":      a.config.MaxAttempts,
		})
		a.log.WithFields(logrus.Fields{
			"bank":    bank,
			"attempt": attempt,
			"of":      a.config.MaxAttempts,
		}).Info("attempt started")

		// The plan is computed once and reused; only the generated code
		// changes between attempts.
		if plan == nil {
			plan = a.planPhase(ctx, bank, schema)
		}

		start := time.Now()
		code, err := a.generatePhase(ctx, bank, schema, plan, previousErrors, text)
		if err != nil {
			a.failAttempt(bank, attempt, PhaseGenerate, err, time.Since(start), &previousErrors)
			continue
		}

		if err := WriteArtifact(paths.Parser, code); err != nil {
			return nil, err
		}
		a.emitter.Emit(EventArtifactWritten, map[string]interface{}{
			"path":    paths.Parser,
			"attempt": attempt,
		})

		start = time.Now()
		err = a.testPhase(ctx, code, text, schema)
		duration := time.Since(start)
		if err == nil {
			a.recordAttempt(history.Attempt{
				RunID:    a.runID,
				Bank:     bank,
				Attempt:  attempt,
				Phase:    PhaseTest,
				Success:  true,
				Duration: duration,
			})
			a.emitter.Emit(EventRunEnd, map[string]interface{}{
				"success":  true,
				"attempts": attempt,
				"parser":   paths.Parser,
			})
			a.log.WithFields(logrus.Fields{
				"bank":     bank,
				"attempts": attempt,
				"parser":   paths.Parser,
			}).Info("parser generated successfully")
			return &Result{
				RunID:      a.runID,
				Bank:       bank,
				Attempts:   attempt,
				ParserPath: paths.Parser,
				Plan:       plan,
			}, nil
		}

		a.emitter.Emit(EventTestFailed, map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})
		a.failAttempt(bank, attempt, PhaseTest, err, duration, &previousErrors)
	}

	a.emitter.Emit(EventRunEnd, map[string]interface{}{
		"success":  false,
		"attempts": a.config.MaxAttempts,
	})
	last := ""
	if len(previousErrors) > 0 {
		last = previousErrors[len(previousErrors)-1]
	}
	return nil, fmt.Errorf("no working parser for %s after %d attempts; last error: %s",
		bank, a.config.MaxAttempts, last)
}

// planPhase asks the model for an implementation plan. Planning is best
// effort: any failure falls back to a generic plan rather than consuming an
// attempt.
func (a *Agent) planPhase(ctx context.Context, bank string, schema *statement.Schema) []string {
	a.emitter.Emit(EventPhaseStart, map[string]interface{}{"phase": PhasePlan})
	defer a.emitter.Emit(EventPhaseEnd, map[string]interface{}{"phase": PhasePlan})

	ctx, cancel := context.WithTimeout(ctx, a.config.LLMTimeout)
	defer cancel()

	var steps []string
	_, err := llm.GenerateObject(ctx, llm.GenerateOptions{
		Client:   a.client,
		Provider: a.config.Provider,
		Model:    a.config.Model,
		System:   planSystem,
		Prompt:   planPrompt(bank, schema),
	}, planSchema, &steps)
	if err != nil || len(steps) == 0 {
		a.log.WithError(err).Warn("planning failed, using fallback plan")
		a.emitter.Emit(EventWarning, map[string]interface{}{
			"phase":  PhasePlan,
			"detail": "fallback plan",
		})
		return fallbackPlan()
	}
	a.log.WithField("steps", len(steps)).Debug("plan ready")
	return steps
}

// generatePhase asks the model for parser source code and strips any
// markdown fencing from the response.
func (a *Agent) generatePhase(ctx context.Context, bank string, schema *statement.Schema, plan, previousErrors []string, text string) (string, error) {
	a.emitter.Emit(EventPhaseStart, map[string]interface{}{"phase": PhaseGenerate})
	defer a.emitter.Emit(EventPhaseEnd, map[string]interface{}{"phase": PhaseGenerate})

	ctx, cancel := context.WithTimeout(ctx, a.config.LLMTimeout)
	defer cancel()

	result, err := llm.Generate(ctx, llm.GenerateOptions{
		Client:   a.client,
		Provider: a.config.Provider,
		Model:    a.config.Model,
		System:   generateSystem,
		Prompt:   generatePrompt(bank, schema, plan, previousErrors, a.config.Notes, excerpt(text, 30)),
	})
	if err != nil {
		return "", fmt.Errorf("code generation failed: %w", err)
	}

	code := ExtractCodeBlock(result.Text)
	if code == "" {
		return "", fmt.Errorf("model response contained no code")
	}
	a.log.WithFields(logrus.Fields{
		"bytes":  len(code),
		"tokens": result.Usage.TotalTokens,
	}).Debug("code generated")
	return code, nil
}

// testPhase runs the candidate parser in the sandbox and validates its output
// against the reference schema.
func (a *Agent) testPhase(ctx context.Context, code, text string, schema *statement.Schema) error {
	a.emitter.Emit(EventPhaseStart, map[string]interface{}{"phase": PhaseTest})
	defer a.emitter.Emit(EventPhaseEnd, map[string]interface{}{"phase": PhaseTest})

	ctx, cancel := context.WithTimeout(ctx, a.config.ExecTimeout)
	defer cancel()

	rows, err := a.runner.Run(ctx, code, text)
	if err != nil {
		return fmt.Errorf("parser execution failed: %v", err)
	}
	return statement.Compare(rows, schema)
}

// failAttempt records the failure and appends it to the error feedback that
// flows into the next generation prompt. Errors only accumulate; earlier
// failures stay visible to the model.
func (a *Agent) failAttempt(bank string, attempt int, phase string, err error, duration time.Duration, previousErrors *[]string) {
	a.log.WithFields(logrus.Fields{
		"bank":    bank,
		"attempt": attempt,
		"phase":   phase,
	}).WithError(err).Warn("attempt failed")

	*previousErrors = append(*previousErrors,
		fmt.Sprintf("Attempt %d (%s): %v", attempt, phase, err))

	a.recordAttempt(history.Attempt{
		RunID:    a.runID,
		Bank:     bank,
		Attempt:  attempt,
		Phase:    phase,
		Success:  false,
		Error:    err.Error(),
		Duration: duration,
	})
}

// recordAttempt persists an attempt row when a ledger is configured. Ledger
// failures are logged, never fatal to the run.
func (a *Agent) recordAttempt(att history.Attempt) {
	if a.ledger == nil {
		return
	}
	if err := a.ledger.Record(att); err != nil {
		a.log.WithError(err).Warn("failed to record attempt history")
	}
}
