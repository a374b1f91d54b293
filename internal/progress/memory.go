package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/RohitSen1235/resumegen/internal/model"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryChannel is an in-process Channel for tests and embedded use. It
// honors the same TTL semantics as the Redis implementation; expiry is
// evaluated lazily on read against the injected clock.
type MemoryChannel struct {
	statusTTL time.Duration
	resultTTL time.Duration
	Now       func() time.Time

	mu      sync.Mutex
	entries map[string]memoryEntry
	results map[string]memoryEntry
}

// NewMemoryChannel builds an empty in-memory channel.
func NewMemoryChannel(statusTTL, resultTTL time.Duration) *MemoryChannel {
	if statusTTL <= 0 {
		statusTTL = 30 * time.Minute
	}
	if resultTTL <= 0 {
		resultTTL = 60 * time.Minute
	}
	return &MemoryChannel{
		statusTTL: statusTTL,
		resultTTL: resultTTL,
		Now:       time.Now,
		entries:   make(map[string]memoryEntry),
		results:   make(map[string]memoryEntry),
	}
}

func (c *MemoryChannel) set(m map[string]memoryEntry, k, v string, ttl time.Duration) {
	m[k] = memoryEntry{value: v, expiresAt: c.Now().Add(ttl)}
}

func (c *MemoryChannel) get(m map[string]memoryEntry, k string) (string, bool) {
	e, ok := m[k]
	if !ok || c.Now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

// PublishStatus updates all status keys under one lock, mirroring the
// transactional write of the Redis channel.
func (c *MemoryChannel) PublishStatus(_ context.Context, jobID string, status model.Status, progress int, currentStep string, eta time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.set(c.entries, key(jobID, "status"), string(status), c.statusTTL)
	c.set(c.entries, key(jobID, "progress"), itoa(progress), c.statusTTL)
	c.set(c.entries, key(jobID, "current_step"), currentStep, c.statusTTL)
	if eta > 0 {
		c.set(c.entries, key(jobID, "estimated_time"), itoa(int(eta.Seconds())), c.statusTTL)
	}
	if status == model.StatusParsing {
		if _, ok := c.get(c.entries, key(jobID, "start_time")); !ok {
			c.set(c.entries, key(jobID, "start_time"), formatUnix(c.Now()), c.statusTTL)
		}
	}
	return nil
}

// ReadStatus assembles a record from the stored keys, or ErrNotFound.
func (c *MemoryChannel) ReadStatus(_ context.Context, jobID string) (model.ProgressRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	status, ok := c.get(c.entries, key(jobID, "status"))
	if !ok {
		return model.ProgressRecord{}, ErrNotFound
	}
	rec := model.ProgressRecord{Status: model.Status(status)}
	if v, ok := c.get(c.entries, key(jobID, "progress")); ok {
		rec.Progress = atoi(v)
	}
	rec.CurrentStep, _ = c.get(c.entries, key(jobID, "current_step"))
	if v, ok := c.get(c.entries, key(jobID, "estimated_time")); ok {
		rec.EstimatedTimeRemaining = time.Duration(atoi(v)) * time.Second
	}
	if v, ok := c.get(c.entries, key(jobID, "start_time")); ok {
		rec.StartTime = parseUnix(v)
		rec.ElapsedTime = c.Now().Sub(rec.StartTime).Truncate(time.Second)
	}
	return rec, nil
}

// PublishResult stores the result with the result TTL.
func (c *MemoryChannel) PublishResult(_ context.Context, jobID string, result model.ResultRecord) error {
	data, err := marshalResult(result)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(c.results, key(jobID, "result"), data, c.resultTTL)
	return nil
}

// ReadResult returns the stored result, or ErrNotFound.
func (c *MemoryChannel) ReadResult(_ context.Context, jobID string) (model.ResultRecord, error) {
	c.mu.Lock()
	data, ok := c.get(c.results, key(jobID, "result"))
	c.mu.Unlock()
	if !ok {
		return model.ResultRecord{}, ErrNotFound
	}
	return unmarshalResult(data)
}

// PublishJobTitle stores the job title with the status TTL.
func (c *MemoryChannel) PublishJobTitle(_ context.Context, jobID, title string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(c.entries, key(jobID, "job_title"), title, c.statusTTL)
	return nil
}

// ReadJobTitle returns the stored job title, or ErrNotFound.
func (c *MemoryChannel) ReadJobTitle(_ context.Context, jobID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	title, ok := c.get(c.entries, key(jobID, "job_title"))
	if !ok {
		return "", ErrNotFound
	}
	return title, nil
}

// Cleanup drops every key belonging to the job.
func (c *MemoryChannel) Cleanup(_ context.Context, jobID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, field := range []string{"status", "progress", "current_step", "estimated_time", "start_time", "job_title"} {
		delete(c.entries, key(jobID, field))
	}
	delete(c.results, key(jobID, "result"))
	return nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func formatUnix(t time.Time) string { return strconv.FormatInt(t.Unix(), 10) }

func parseUnix(s string) time.Time {
	ts, _ := strconv.ParseInt(s, 10, 64)
	return time.Unix(ts, 0).UTC()
}

func marshalResult(r model.ResultRecord) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("progress: marshal result: %w", err)
	}
	return string(data), nil
}

func unmarshalResult(data string) (model.ResultRecord, error) {
	var rec model.ResultRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return model.ResultRecord{}, fmt.Errorf("progress: decode result: %w", err)
	}
	return rec, nil
}
