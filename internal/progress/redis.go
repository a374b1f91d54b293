package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RohitSen1235/resumegen/internal/model"
)

// RedisChannel is the production Channel backed by a Redis instance.
// All keys share the "resume:{job_id}:" prefix so a job's state can be
// removed as a unit.
type RedisChannel struct {
	client    *redis.Client
	statusTTL time.Duration
	resultTTL time.Duration
	now       func() time.Time
}

// NewRedisChannel builds a channel around an existing client. statusTTL
// bounds the lifetime of status keys (default 30m), resultTTL the final
// result (default 60m).
func NewRedisChannel(client *redis.Client, statusTTL, resultTTL time.Duration) *RedisChannel {
	if statusTTL <= 0 {
		statusTTL = 30 * time.Minute
	}
	if resultTTL <= 0 {
		resultTTL = 60 * time.Minute
	}
	return &RedisChannel{
		client:    client,
		statusTTL: statusTTL,
		resultTTL: resultTTL,
		now:       time.Now,
	}
}

func key(jobID, field string) string {
	return fmt.Sprintf("resume:%s:%s", jobID, field)
}

// PublishStatus writes all status keys in a single MULTI/EXEC transaction so
// a concurrent reader never observes a torn update.
func (c *RedisChannel) PublishStatus(ctx context.Context, jobID string, status model.Status, progress int, currentStep string, eta time.Duration) error {
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key(jobID, "status"), string(status), c.statusTTL)
	pipe.Set(ctx, key(jobID, "progress"), strconv.Itoa(progress), c.statusTTL)
	pipe.Set(ctx, key(jobID, "current_step"), currentStep, c.statusTTL)
	if eta > 0 {
		pipe.Set(ctx, key(jobID, "estimated_time"), strconv.Itoa(int(eta.Seconds())), c.statusTTL)
	}
	if status == model.StatusParsing {
		// Set-once: a restarted parsing phase must not reset the clock.
		pipe.SetNX(ctx, key(jobID, "start_time"), strconv.FormatInt(c.now().Unix(), 10), c.statusTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("progress: publish status: %w", err)
	}
	return nil
}

// ReadStatus fetches every status key with one MGET and assembles the record.
func (c *RedisChannel) ReadStatus(ctx context.Context, jobID string) (model.ProgressRecord, error) {
	vals, err := c.client.MGet(ctx,
		key(jobID, "status"),
		key(jobID, "progress"),
		key(jobID, "current_step"),
		key(jobID, "estimated_time"),
		key(jobID, "start_time"),
	).Result()
	if err != nil {
		return model.ProgressRecord{}, fmt.Errorf("progress: read status: %w", err)
	}
	if vals[0] == nil {
		return model.ProgressRecord{}, ErrNotFound
	}

	rec := model.ProgressRecord{Status: model.Status(asString(vals[0]))}
	if n, err := strconv.Atoi(asString(vals[1])); err == nil {
		rec.Progress = n
	}
	rec.CurrentStep = asString(vals[2])
	if n, err := strconv.Atoi(asString(vals[3])); err == nil {
		rec.EstimatedTimeRemaining = time.Duration(n) * time.Second
	}
	if ts, err := strconv.ParseInt(asString(vals[4]), 10, 64); err == nil {
		rec.StartTime = time.Unix(ts, 0).UTC()
		rec.ElapsedTime = c.now().Sub(rec.StartTime).Truncate(time.Second)
	}
	return rec, nil
}

// PublishResult serializes the result to JSON under the job's result key.
func (c *RedisChannel) PublishResult(ctx context.Context, jobID string, result model.ResultRecord) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("progress: marshal result: %w", err)
	}
	if err := c.client.Set(ctx, key(jobID, "result"), data, c.resultTTL).Err(); err != nil {
		return fmt.Errorf("progress: publish result: %w", err)
	}
	return nil
}

// ReadResult returns the stored result, or ErrNotFound.
func (c *RedisChannel) ReadResult(ctx context.Context, jobID string) (model.ResultRecord, error) {
	data, err := c.client.Get(ctx, key(jobID, "result")).Bytes()
	if err == redis.Nil {
		return model.ResultRecord{}, ErrNotFound
	}
	if err != nil {
		return model.ResultRecord{}, fmt.Errorf("progress: read result: %w", err)
	}
	var rec model.ResultRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.ResultRecord{}, fmt.Errorf("progress: decode result: %w", err)
	}
	return rec, nil
}

// PublishJobTitle stores the sanitized job title with the status TTL.
func (c *RedisChannel) PublishJobTitle(ctx context.Context, jobID, title string) error {
	if err := c.client.Set(ctx, key(jobID, "job_title"), title, c.statusTTL).Err(); err != nil {
		return fmt.Errorf("progress: publish job title: %w", err)
	}
	return nil
}

// ReadJobTitle returns the stored job title, or ErrNotFound.
func (c *RedisChannel) ReadJobTitle(ctx context.Context, jobID string) (string, error) {
	title, err := c.client.Get(ctx, key(jobID, "job_title")).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("progress: read job title: %w", err)
	}
	return title, nil
}

// Cleanup removes every key belonging to the job in one DEL.
func (c *RedisChannel) Cleanup(ctx context.Context, jobID string) error {
	err := c.client.Del(ctx,
		key(jobID, "status"),
		key(jobID, "progress"),
		key(jobID, "current_step"),
		key(jobID, "estimated_time"),
		key(jobID, "start_time"),
		key(jobID, "job_title"),
		key(jobID, "result"),
	).Err()
	if err != nil {
		return fmt.Errorf("progress: cleanup: %w", err)
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
