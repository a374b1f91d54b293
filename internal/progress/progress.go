// Package progress publishes and reads per-job generation status through a
// TTL-keyed ephemeral store.
//
// The default implementation is Redis-backed. Any implementation is
// acceptable provided successive PublishStatus calls for one job are
// observed in the order they were issued when the reader fetches all keys
// in a single round-trip.
package progress

import (
	"context"
	"errors"
	"time"

	"github.com/RohitSen1235/resumegen/internal/model"
)

// ErrNotFound is returned when no status or result exists for a job.
var ErrNotFound = errors.New("progress: not found")

// Channel carries per-job status and the final result. Only the pipeline
// orchestrator writes; any number of readers may poll.
type Channel interface {
	// PublishStatus atomically updates the status, progress, current step
	// and optional ETA for a job. The first publish with StatusParsing also
	// records the job's start time. eta <= 0 means no estimate.
	PublishStatus(ctx context.Context, jobID string, status model.Status, progress int, currentStep string, eta time.Duration) error

	// ReadStatus fetches all status keys in one round-trip and derives the
	// elapsed time. Returns ErrNotFound when the status key is absent.
	ReadStatus(ctx context.Context, jobID string) (model.ProgressRecord, error)

	// PublishResult stores the final result of a completed job.
	PublishResult(ctx context.Context, jobID string, result model.ResultRecord) error

	// ReadResult returns the stored result, or ErrNotFound.
	ReadResult(ctx context.Context, jobID string) (model.ResultRecord, error)

	// PublishJobTitle stores the extracted job title alongside the status keys.
	PublishJobTitle(ctx context.Context, jobID, title string) error

	// ReadJobTitle returns the stored job title, or ErrNotFound.
	ReadJobTitle(ctx context.Context, jobID string) (string, error)

	// Cleanup deletes every key belonging to the job.
	Cleanup(ctx context.Context, jobID string) error
}
