// Package pipeline drives a generation job through its stages: draft,
// three analyzers, constructor. It owns the credit discipline and all
// progress publication.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/RohitSen1235/resumegen/internal/agent"
	"github.com/RohitSen1235/resumegen/internal/llm"
	"github.com/RohitSen1235/resumegen/internal/model"
	"github.com/RohitSen1235/resumegen/internal/objectstore"
	"github.com/RohitSen1235/resumegen/internal/progress"
	"github.com/RohitSen1235/resumegen/internal/token"
)

var (
	// ErrInsufficientCredits is returned when the user has no credits at a
	// credit checkpoint. The job is failed and nothing is debited.
	ErrInsufficientCredits = errors.New("pipeline: insufficient credits")
	// ErrTimeout is returned when the whole-pipeline deadline elapses.
	ErrTimeout = errors.New("pipeline: generation took too long")
)

var tracer = otel.Tracer("resumegen/pipeline")

// CreditStore is the slice of the relational store the pipeline uses.
type CreditStore interface {
	GetCredits(ctx context.Context, userID uuid.UUID) (int, error)
	DebitCredit(ctx context.Context, userID uuid.UUID) error
}

// Options bound the orchestrator's behavior.
type Options struct {
	LLMModel         string        // Draft bootstrap and job-title extraction.
	ConstructorModel string        // Constructor stage.
	Timeout          time.Duration // Upper bound around one whole job.
}

// Orchestrator runs jobs. One orchestrator serves many jobs; all per-job
// state lives on the stack of Run.
type Orchestrator struct {
	llm      llm.Client
	tok      token.Tokenizer
	rateUSD  float64
	fxRate   float64
	progress progress.Channel
	credits  CreditStore
	store    objectstore.Store
	catalog  agent.Catalog
	opts     Options
	logger   *slog.Logger
}

// New wires an orchestrator. The tokenizer must already be initialized;
// without one the accountant cannot operate.
func New(client llm.Client, tok token.Tokenizer, rateUSD, fxRate float64,
	ch progress.Channel, credits CreditStore, store objectstore.Store,
	opts Options, logger *slog.Logger) *Orchestrator {

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Minute
	}
	return &Orchestrator{
		llm:      client,
		tok:      tok,
		rateUSD:  rateUSD,
		fxRate:   fxRate,
		progress: ch,
		credits:  credits,
		store:    store,
		catalog:  agent.NewCatalog(opts.LLMModel, opts.ConstructorModel),
		opts:     opts,
		logger:   logger,
	}
}

// Start runs the job asynchronously and returns immediately. Progress and
// the result are observable through the progress channel only.
func (o *Orchestrator) Start(req model.JobRequest) {
	go func() {
		// Detached from the caller: the submitting request may finish long
		// before the job does.
		if _, err := o.Run(context.Background(), req); err != nil {
			o.logger.Error("pipeline: job failed", "job_id", req.JobID, "error", err)
		}
	}()
}

// Run executes one job to completion under the pipeline timeout and
// returns the final result. Every terminal outcome is also published to
// the progress channel.
func (o *Orchestrator) Run(ctx context.Context, req model.JobRequest) (model.ResultRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(attribute.String("job_id", req.JobID.String())))
	defer span.End()

	result, err := o.run(ctx, req)
	if err != nil {
		span.RecordError(err)
		return model.ResultRecord{}, err
	}
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, req model.JobRequest) (model.ResultRecord, error) {
	jobID := req.JobID.String()
	acct := token.NewAccountant(o.tok, o.rateUSD, o.fxRate)
	lastProgress := 0

	fail := func(err error, message string) (model.ResultRecord, error) {
		if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
			err = ErrTimeout
			message = "Resume generation took too long"
		}
		o.publishFailure(ctx, jobID, lastProgress, message)
		return model.ResultRecord{}, err
	}

	// Credit pre-check on a fresh session, before anything costs money.
	credits, err := o.credits.GetCredits(ctx, req.UserID)
	if err != nil {
		return fail(fmt.Errorf("pipeline: credit check: %w", err), "Internal error during credit check")
	}
	if credits < 1 {
		return fail(ErrInsufficientCredits, "Insufficient credits")
	}

	// The initial publish must succeed: past this point progress failures
	// are tolerated, but a job nobody can observe is not started at all.
	if err := o.progress.PublishStatus(ctx, jobID, model.StatusParsing, 5, "Starting resume generation...", 180*time.Second); err != nil {
		return model.ResultRecord{}, fmt.Errorf("pipeline: publish initial status: %w", err)
	}
	lastProgress = 5

	if err := o.publish(ctx, jobID, model.StatusParsing, 10, "Analyzing job description...", 180*time.Second); err == nil {
		lastProgress = 10
	}

	// Job title extraction feeds the result record and the output file
	// name; failure degrades to a fallback title, never fails the job.
	jobTitle := o.extractJobTitle(ctx, acct, req.JobDescription)
	if err := o.progress.PublishJobTitle(ctx, jobID, jobTitle); err != nil {
		o.logger.Warn("pipeline: publish job title", "job_id", jobID, "error", err)
	}

	draft, err := o.draft(ctx, acct, req)
	if err != nil {
		return fail(err, "Failed to prepare initial resume draft")
	}

	if err := o.publish(ctx, jobID, model.StatusAnalyzing, 25, "Analyzing content quality...", 150*time.Second); err == nil {
		lastProgress = 25
	}

	analyzerOutputs, err := o.runAnalyzers(ctx, acct, req.JobDescription, draft)
	if err != nil {
		return fail(err, "Resume analysis failed")
	}

	if err := o.publish(ctx, jobID, model.StatusOptimizing, 50, "Optimizing skills alignment...", 120*time.Second); err == nil {
		lastProgress = 50
	}

	// Credit re-check before the constructor stage.
	credits, err = o.credits.GetCredits(ctx, req.UserID)
	if err != nil {
		return fail(fmt.Errorf("pipeline: credit re-check: %w", err), "Internal error during credit check")
	}
	if credits < 1 {
		return fail(ErrInsufficientCredits, "Insufficient credits")
	}

	if err := o.publish(ctx, jobID, model.StatusConstructing, 75, "Constructing final resume...", 60*time.Second); err == nil {
		lastProgress = 75
	}

	agentOutputs := strings.Join(analyzerOutputs, "\n\n")
	content, err := o.runStage(ctx, acct, o.catalog.Constructor, agentOutputs+"\n\n"+req.JobDescription)
	if err != nil {
		return fail(err, "Resume construction failed")
	}

	// Persisting the markdown artifact is best-effort; the result record
	// carries the content either way.
	contentKey := objectstore.GeneratedContentKey(req.UserID.String(), jobID)
	if err := o.store.UploadBytes(ctx, contentKey, []byte(content), "text/markdown"); err != nil {
		o.logger.Warn("pipeline: persist content", "job_id", jobID, "error", err)
	}

	// Debit exactly once, after a successful constructor stage and before
	// the result is published. A failed debit fails the job with no
	// balance change and no result.
	if err := o.credits.DebitCredit(ctx, req.UserID); err != nil {
		return fail(fmt.Errorf("pipeline: debit: %w", err), "Failed to debit credits")
	}

	totals := acct.Totals()
	result := model.ResultRecord{
		JobID:        jobID,
		JobTitle:     jobTitle,
		Content:      content,
		AgentOutputs: agentOutputs,
		TokenUsage:   totals.TotalTokens,
		TotalUsage:   totals,
		Message:      "Resume generated successfully",
	}

	// Result strictly precedes the completed status so no reader can
	// observe completion without a result.
	if err := o.progress.PublishResult(ctx, jobID, result); err != nil {
		o.logger.Error("pipeline: publish result", "job_id", jobID, "error", err)
		return fail(err, "Failed to publish result")
	}
	if err := o.publish(ctx, jobID, model.StatusCompleted, 100, "Resume generation completed!", 0); err != nil {
		o.logger.Warn("pipeline: publish completion", "job_id", jobID, "error", err)
	}

	o.logger.Info("pipeline: job completed",
		"job_id", jobID, "job_title", jobTitle, "total_tokens", totals.TotalTokens)
	return result, nil
}

// publish pushes a status update. After the credit pre-check the pipeline
// keeps running when the ephemeral store misbehaves; readers simply
// observe a stale record.
func (o *Orchestrator) publish(ctx context.Context, jobID string, status model.Status, pct int, step string, eta time.Duration) error {
	if err := o.progress.PublishStatus(ctx, jobID, status, pct, step, eta); err != nil {
		o.logger.Warn("pipeline: publish status", "job_id", jobID, "status", status, "error", err)
		return err
	}
	return nil
}

// publishFailure marks the job failed at its last-known progress. Uses a
// context detached from the (possibly expired) job context.
func (o *Orchestrator) publishFailure(ctx context.Context, jobID string, pct int, message string) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := o.progress.PublishStatus(pubCtx, jobID, model.StatusFailed, pct, message, 0); err != nil {
		o.logger.Error("pipeline: publish failure", "job_id", jobID, "error", err)
	}
}

// runAnalyzers executes the three analyzer stages. They may run in
// parallel; only the concatenation of their outputs is consumed, in fixed
// order: content quality, skills, experience.
func (o *Orchestrator) runAnalyzers(ctx context.Context, acct *token.Accountant, jobDescription, draft string) ([]string, error) {
	stageContext := fmt.Sprintf("job description:\n%s\n############\ninitial_content:\n%s", jobDescription, draft)

	stages := []agent.Stage{o.catalog.ContentQuality, o.catalog.Skills, o.catalog.Experience}
	outputs := make([]string, len(stages))

	g, gctx := errgroup.WithContext(ctx)
	for i, stage := range stages {
		i, stage := i, stage
		g.Go(func() error {
			out, err := o.runStage(gctx, acct, stage, stageContext)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, err
	}
	return outputs, nil
}

func (o *Orchestrator) runStage(ctx context.Context, acct *token.Accountant, stage agent.Stage, stageContext string) (string, error) {
	ctx, span := tracer.Start(ctx, "pipeline.stage",
		trace.WithAttributes(attribute.String("agent", stage.Agent.Name)))
	defer span.End()

	out, err := agent.Invoke(ctx, o.llm, acct, stage.Agent, stage.Task, stageContext)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return out, nil
}
