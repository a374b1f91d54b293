// Package resumegen is the public API for embedding the resume generation
// pipeline and rendering engine.
//
// Consumers import this package to run generation jobs without going
// through a separate service process:
//
//	app, err := resumegen.New(
//	    resumegen.WithLogger(logger),
//	    resumegen.WithMemoryProgress(),
//	)
//	if err != nil { ... }
//	defer app.Close(context.Background())
//	jobID, err := app.Start(resumegen.GenerateRequest{...})
//
// The import graph enforces a strict no-cycle rule: resumegen (root)
// imports internal/*, but internal/* never imports resumegen (root).
// Public types (Profile, Result, etc.) are standalone structs with no
// internal imports; conversion helpers live here because this is the only
// file that sees both sides of the boundary.
package resumegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/RohitSen1235/resumegen/internal/config"
	"github.com/RohitSen1235/resumegen/internal/latex"
	"github.com/RohitSen1235/resumegen/internal/llm"
	"github.com/RohitSen1235/resumegen/internal/model"
	"github.com/RohitSen1235/resumegen/internal/objectstore"
	"github.com/RohitSen1235/resumegen/internal/pipeline"
	"github.com/RohitSen1235/resumegen/internal/progress"
	"github.com/RohitSen1235/resumegen/internal/storage"
	"github.com/RohitSen1235/resumegen/internal/telemetry"
	"github.com/RohitSen1235/resumegen/internal/token"
	"github.com/RohitSen1235/resumegen/migrations"
)

var (
	// ErrJobNotFound is returned by Status and Result when no record exists
	// for the job ID, either because it never ran or because its keys expired.
	ErrJobNotFound = errors.New("resumegen: job not found")
	// ErrInsufficientCredits is returned by Generate when the user cannot
	// afford a job.
	ErrInsufficientCredits = pipeline.ErrInsufficientCredits
)

// App owns the pipeline, the rendering engine and their backing stores.
// Construct with New(); App has no public fields.
type App struct {
	cfg          config.Config
	db           *storage.DB   // nil when an external CreditStore is injected
	redis        *redis.Client // nil with WithMemoryProgress
	progress     progress.Channel
	store        objectstore.Store
	orch         *pipeline.Orchestrator
	engine       *latex.Engine
	otelShutdown telemetry.Shutdown
	logger       *slog.Logger
}

// New wires the App from environment configuration plus option overrides.
// It connects to Postgres and Redis (unless replaced by options), probes
// the LLM provider, and returns a ready App. No goroutines are started.
func New(opts ...Option) (*App, error) {
	o := resolvedOptions{}
	for _, fn := range opts {
		fn(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	// Load .env file if present (non-fatal; production won't have one).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.databaseURL != "" {
		cfg.DatabaseURL = o.databaseURL
	}
	if o.redisURL != "" {
		cfg.RedisURL = o.redisURL
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}
	if o.pipelineTimeout > 0 {
		cfg.PipelineTimeout = o.pipelineTimeout
	}
	version := o.version
	if version == "" {
		version = "dev"
	}

	logger.Info("resumegen starting", "version", version)

	ctx := context.Background()

	otelShutdown, err := telemetry.Init(ctx, cfg.OTELEndpoint, cfg.ServiceName, version, cfg.OTELInsecure)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	app := &App{cfg: cfg, otelShutdown: otelShutdown, logger: logger}
	fail := func(err error) (*App, error) {
		app.Close(ctx)
		return nil, err
	}

	// Credit ledger: external override or the users table in Postgres.
	var credits pipeline.CreditStore
	if o.creditStore != nil {
		credits = o.creditStore
	} else {
		db, err := storage.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return fail(fmt.Errorf("storage: %w", err))
		}
		app.db = db
		if err := db.RunMigrations(ctx, migrations.FS); err != nil {
			return fail(fmt.Errorf("storage: migrations: %w", err))
		}
		credits = db
	}

	// Progress channel: in-process or Redis.
	if o.memoryProgress {
		app.progress = progress.NewMemoryChannel(cfg.StatusTTL, cfg.ResultTTL)
		logger.Info("progress channel: memory (in-process)")
	} else {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fail(fmt.Errorf("redis: parse url: %w", err))
		}
		client := redis.NewClient(redisOpts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return fail(fmt.Errorf("redis: ping: %w", err))
		}
		app.redis = client
		app.progress = progress.NewRedisChannel(client, cfg.StatusTTL, cfg.ResultTTL)
	}

	// Object store: external override or S3.
	if o.objectStore != nil {
		app.store = o.objectStore
	} else {
		s3, err := objectstore.New(ctx, objectstore.Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.AWSAccessKeyID,
			SecretKey: cfg.AWSSecretKey,
		}, logger)
		if err != nil {
			return fail(fmt.Errorf("objectstore: %w", err))
		}
		app.store = s3
	}

	// LLM client: external override or the Groq HTTP client, validated with
	// a one-token probe so a bad API key fails at startup, not mid-job.
	var llmClient llm.Client
	if o.llmClient != nil {
		llmClient = &llmClientAdapter{c: o.llmClient}
	} else {
		if cfg.LLMAPIKey == "" {
			return fail(errors.New("llm: GROQ_API_KEY is required"))
		}
		httpClient := llm.NewHTTPClient(cfg.LLMAPIKey, cfg.LLMBaseURL)
		if err := httpClient.Ping(ctx, cfg.LLMModel); err != nil {
			return fail(err)
		}
		llmClient = httpClient
	}

	tok, err := token.NewTokenizer(cfg.TokenizerEncoding)
	if err != nil {
		return fail(fmt.Errorf("token: %w", err))
	}

	app.orch = pipeline.New(llmClient, tok, cfg.TokenRateUSD, cfg.TokenFXRate,
		app.progress, credits, app.store, pipeline.Options{
			LLMModel:         cfg.LLMModel,
			ConstructorModel: cfg.ConstructorModel,
			Timeout:          cfg.PipelineTimeout,
		}, logger)

	registry := latex.NewRegistry(latex.DefaultTemplates())
	compiler := latex.NewCompiler(cfg.PDFLaTeXBin, cfg.XeLaTeXBin, cfg.KpsewhichBin, logger)
	app.engine = latex.NewEngine(app.store, registry, compiler, cfg.OutputDir, logger)

	return app, nil
}

// Start submits a generation job and returns its ID immediately. Progress
// and the final result are observable through Status and Result.
func (a *App) Start(req GenerateRequest) (string, error) {
	jobReq, err := toJobRequest(req)
	if err != nil {
		return "", err
	}
	a.orch.Start(jobReq)
	return jobReq.JobID.String(), nil
}

// Generate runs one job synchronously and returns its result. The same
// progress records are published as for Start, so concurrent readers can
// still poll Status while Generate blocks.
func (a *App) Generate(ctx context.Context, req GenerateRequest) (Result, error) {
	jobReq, err := toJobRequest(req)
	if err != nil {
		return Result{}, err
	}
	rec, err := a.orch.Run(ctx, jobReq)
	if err != nil {
		return Result{}, err
	}
	return toPublicResult(rec), nil
}

// Status returns the current progress of a job.
func (a *App) Status(ctx context.Context, jobID string) (Progress, error) {
	rec, err := a.progress.ReadStatus(ctx, jobID)
	if errors.Is(err, progress.ErrNotFound) {
		return Progress{}, ErrJobNotFound
	}
	if err != nil {
		return Progress{}, err
	}
	return Progress{
		Status:      string(rec.Status),
		Progress:    rec.Progress,
		CurrentStep: rec.CurrentStep,
		ETA:         rec.EstimatedTimeRemaining,
		StartTime:   rec.StartTime,
		Elapsed:     rec.ElapsedTime,
	}, nil
}

// Result returns the final artifact of a completed job.
func (a *App) Result(ctx context.Context, jobID string) (Result, error) {
	rec, err := a.progress.ReadResult(ctx, jobID)
	if errors.Is(err, progress.ErrNotFound) {
		return Result{}, ErrJobNotFound
	}
	if err != nil {
		return Result{}, err
	}
	return toPublicResult(rec), nil
}

// RenderPDF typesets a job's content into a PDF using the selected
// template. An empty TemplateID selects the default template.
func (a *App) RenderPDF(ctx context.Context, req RenderPDFRequest) (RenderPDFResult, error) {
	res, err := a.engine.Render(ctx, latex.RenderRequest{
		Personal: model.PersonalInfo{
			Name:     req.Personal.Name,
			Email:    req.Personal.Email,
			Phone:    req.Personal.Phone,
			Location: req.Personal.Location,
			LinkedIn: req.Personal.LinkedIn,
		},
		Content:    req.Content,
		JobTitle:   req.JobTitle,
		UserID:     req.UserID,
		TemplateID: req.TemplateID,
	})
	if err != nil {
		return RenderPDFResult{}, err
	}
	return RenderPDFResult{PDFPath: res.PDFPath, Overflow: res.Overflow, Message: res.Message}, nil
}

// UploadResumeText stores parsed resume text as the user's latest upload.
// Subsequent jobs for this user use it as the initial draft instead of
// bootstrapping one from the profile.
func (a *App) UploadResumeText(ctx context.Context, userID uuid.UUID, text string) error {
	key := objectstore.LatestResumeTextKey(userID.String())
	if err := a.store.UploadBytes(ctx, key, []byte(text), "text/plain"); err != nil {
		return fmt.Errorf("upload resume text: %w", err)
	}
	return nil
}

// Close releases all connections. Safe to call on a partially constructed
// App and more than once.
func (a *App) Close(ctx context.Context) {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close", "error", err)
		}
		a.redis = nil
	}
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(ctx)
		a.otelShutdown = nil
	}
}

// ── Adapters and converters (this file imports both sides) ─────────────────

// llmClientAdapter wraps a public LLMClient to satisfy the internal
// chat-completion interface.
type llmClientAdapter struct {
	c LLMClient
}

func (a *llmClientAdapter) ChatCompletion(ctx context.Context, req llm.Request) (llm.Response, error) {
	messages := make([]ChatMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = ChatMessage{Role: m.Role, Content: m.Content}
	}
	out, err := a.c.Complete(ctx, req.Model, messages, req.Temperature, req.MaxTokens)
	if err != nil {
		return llm.Response{}, err
	}
	return llm.Response{Content: out}, nil
}

func toJobRequest(req GenerateRequest) (model.JobRequest, error) {
	if req.UserID == uuid.Nil {
		return model.JobRequest{}, errors.New("resumegen: user ID is required")
	}
	if req.JobDescription == "" {
		return model.JobRequest{}, errors.New("resumegen: job description is required")
	}

	experiences := make([]model.Experience, len(req.Profile.Experiences))
	for i, e := range req.Profile.Experiences {
		experiences[i] = model.Experience{
			Position:    e.Position,
			Company:     e.Company,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
		}
	}
	education := make([]model.Education, len(req.Profile.Education))
	for i, e := range req.Profile.Education {
		education[i] = model.Education{
			Institution:  e.Institution,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
		}
	}

	return model.JobRequest{
		JobID:  uuid.New(),
		UserID: req.UserID,
		Profile: model.ProfileSnapshot{
			ProfessionalSummary: req.Profile.Summary,
			PastExperiences:     experiences,
			Skills:              req.Profile.Skills,
			Education:           education,
			Certifications:      req.Profile.Certifications,
		},
		JobDescription: req.JobDescription,
		SkillHints:     req.SkillHints,
		TemplateID:     req.TemplateID,
	}, nil
}

func toPublicResult(rec model.ResultRecord) Result {
	return Result{
		JobID:        rec.JobID,
		JobTitle:     rec.JobTitle,
		Content:      rec.Content,
		AgentOutputs: rec.AgentOutputs,
		TotalTokens:  rec.TotalUsage.TotalTokens,
		TotalCost:    rec.TotalUsage.TotalCost,
		Message:      rec.Message,
	}
}

// _ asserts at compile time that the internal stores satisfy the public
// extension interfaces, keeping the two method sets from drifting apart.
var (
	_ CreditStore = (*storage.DB)(nil)
	_ ObjectStore = (*objectstore.Client)(nil)
)
