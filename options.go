package resumegen

import (
	"log/slog"
	"time"
)

// Option configures an App.
type Option func(*resolvedOptions)

// resolvedOptions holds all extension points after applying defaults.
// Unexported — callers use the With* functions.
type resolvedOptions struct {
	logger          *slog.Logger
	version         string
	databaseURL     string
	redisURL        string
	outputDir       string
	pipelineTimeout time.Duration
	memoryProgress  bool
	llmClient       LLMClient
	creditStore     CreditStore
	objectStore     ObjectStore
}

// WithLogger sets the structured logger for the App.
// If not set, the default slog logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *resolvedOptions) { o.logger = logger }
}

// WithVersion sets the version string reported in logs and telemetry.
func WithVersion(version string) Option {
	return func(o *resolvedOptions) { o.version = version }
}

// WithDatabaseURL overrides the Postgres connection string from config
// (DATABASE_URL env var). Ignored when WithCreditStore is also set.
func WithDatabaseURL(url string) Option {
	return func(o *resolvedOptions) { o.databaseURL = url }
}

// WithRedisURL overrides the Redis connection string from config
// (REDIS_URL env var). Ignored when WithMemoryProgress is also set.
func WithRedisURL(url string) Option {
	return func(o *resolvedOptions) { o.redisURL = url }
}

// WithOutputDir overrides the directory compiled PDFs are written to.
func WithOutputDir(dir string) Option {
	return func(o *resolvedOptions) { o.outputDir = dir }
}

// WithPipelineTimeout overrides the upper bound around one whole job.
func WithPipelineTimeout(d time.Duration) Option {
	return func(o *resolvedOptions) { o.pipelineTimeout = d }
}

// WithMemoryProgress replaces the Redis progress channel with an in-process
// one. Progress and results are then visible only within this process;
// intended for embedding and tests, not for multi-instance deployments.
func WithMemoryProgress() Option {
	return func(o *resolvedOptions) { o.memoryProgress = true }
}

// WithLLMClient replaces the built-in Groq HTTP client. When set, no
// startup connectivity probe is performed and GROQ_API_KEY is not required.
func WithLLMClient(c LLMClient) Option {
	return func(o *resolvedOptions) { o.llmClient = c }
}

// WithCreditStore replaces the Postgres-backed credit ledger. When set, no
// database connection is opened and DATABASE_URL is not required.
func WithCreditStore(cs CreditStore) Option {
	return func(o *resolvedOptions) { o.creditStore = cs }
}

// WithObjectStore replaces the S3 object store.
func WithObjectStore(s ObjectStore) Option {
	return func(o *resolvedOptions) { o.objectStore = s }
}
