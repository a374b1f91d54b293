package resumegen

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Extension points for embedding consumers. Implementations injected via
// options replace the built-in wiring (Groq HTTP client, Postgres credits,
// S3 object store).

// ChatMessage is one turn of a chat completion.
type ChatMessage struct {
	Role    string
	Content string
}

// LLMClient abstracts the chat-completion provider used by every pipeline
// stage. The built-in client speaks the OpenAI-compatible wire format.
type LLMClient interface {
	Complete(ctx context.Context, model string, messages []ChatMessage, temperature float64, maxTokens int) (string, error)
}

// CreditStore abstracts the user credit ledger. The built-in implementation
// is backed by the users table in Postgres. DebitCredit must be atomic: it
// debits exactly one credit or returns an error with no balance change.
type CreditStore interface {
	GetCredits(ctx context.Context, userID uuid.UUID) (int, error)
	DebitCredit(ctx context.Context, userID uuid.UUID) error
}

// ObjectStore abstracts blob storage for uploaded resume text, generated
// markdown content and LaTeX template bodies. The built-in implementation
// is S3 (or any S3-compatible endpoint).
type ObjectStore interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) error
	DownloadText(ctx context.Context, key string) (string, error)
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
