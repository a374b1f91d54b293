package progress_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/RohitSen1235/resumegen/internal/model"
	"github.com/RohitSen1235/resumegen/internal/progress"
)

var testRedis *redis.Client

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get container port: %v\n", err)
		os.Exit(1)
	}

	testRedis = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})

	if err := testRedis.Ping(ctx).Err(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to ping redis: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	_ = testRedis.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

// newJobID gives each test its own key space; the shared Redis instance is
// never flushed between tests.
func newJobID() string {
	return uuid.NewString()
}

func TestRedisStatusRoundTrip(t *testing.T) {
	ctx := context.Background()
	ch := progress.NewRedisChannel(testRedis, time.Minute, time.Minute)
	jobID := newJobID()

	require.NoError(t, ch.PublishStatus(ctx, jobID, model.StatusConstructing, 75, "Constructing final resume...", 60*time.Second))

	rec, err := ch.ReadStatus(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConstructing, rec.Status)
	assert.Equal(t, 75, rec.Progress)
	assert.Equal(t, "Constructing final resume...", rec.CurrentStep)
	assert.Equal(t, 60*time.Second, rec.EstimatedTimeRemaining)
}

func TestRedisMissingJob(t *testing.T) {
	ctx := context.Background()
	ch := progress.NewRedisChannel(testRedis, time.Minute, time.Minute)

	_, err := ch.ReadStatus(ctx, newJobID())
	assert.ErrorIs(t, err, progress.ErrNotFound)

	_, err = ch.ReadResult(ctx, newJobID())
	assert.ErrorIs(t, err, progress.ErrNotFound)
}

func TestRedisStartTimeSetOnce(t *testing.T) {
	ctx := context.Background()
	ch := progress.NewRedisChannel(testRedis, time.Minute, time.Minute)
	jobID := newJobID()

	require.NoError(t, ch.PublishStatus(ctx, jobID, model.StatusParsing, 5, "Starting resume generation...", 180*time.Second))
	first, err := ch.ReadStatus(ctx, jobID)
	require.NoError(t, err)
	require.False(t, first.StartTime.IsZero())

	require.NoError(t, ch.PublishStatus(ctx, jobID, model.StatusParsing, 10, "Analyzing job description...", 180*time.Second))
	second, err := ch.ReadStatus(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, first.StartTime, second.StartTime)
}

func TestRedisResultRoundTrip(t *testing.T) {
	ctx := context.Background()
	ch := progress.NewRedisChannel(testRedis, time.Minute, time.Minute)
	jobID := newJobID()

	in := model.ResultRecord{
		JobID:        jobID,
		JobTitle:     "platform-engineer",
		Content:      "# Professional Summary\nPlatform work.",
		AgentOutputs: "a\n\nb\n\nc",
		TokenUsage:   512,
		Message:      "Resume generated successfully",
	}
	require.NoError(t, ch.PublishResult(ctx, jobID, in))

	out, err := ch.ReadResult(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRedisKeyTTLs(t *testing.T) {
	ctx := context.Background()
	ch := progress.NewRedisChannel(testRedis, 30*time.Minute, time.Hour)
	jobID := newJobID()

	require.NoError(t, ch.PublishStatus(ctx, jobID, model.StatusParsing, 5, "Starting resume generation...", 180*time.Second))
	require.NoError(t, ch.PublishResult(ctx, jobID, model.ResultRecord{JobID: jobID}))

	statusTTL, err := testRedis.TTL(ctx, fmt.Sprintf("resume:%s:status", jobID)).Result()
	require.NoError(t, err)
	assert.InDelta(t, (30 * time.Minute).Seconds(), statusTTL.Seconds(), 5)

	resultTTL, err := testRedis.TTL(ctx, fmt.Sprintf("resume:%s:result", jobID)).Result()
	require.NoError(t, err)
	assert.InDelta(t, time.Hour.Seconds(), resultTTL.Seconds(), 5)
}

func TestRedisCleanup(t *testing.T) {
	ctx := context.Background()
	ch := progress.NewRedisChannel(testRedis, time.Minute, time.Minute)
	jobID := newJobID()

	require.NoError(t, ch.PublishStatus(ctx, jobID, model.StatusCompleted, 100, "Resume generation completed!", 0))
	require.NoError(t, ch.PublishJobTitle(ctx, jobID, "backend-engineer"))
	require.NoError(t, ch.PublishResult(ctx, jobID, model.ResultRecord{JobID: jobID}))

	require.NoError(t, ch.Cleanup(ctx, jobID))

	_, err := ch.ReadStatus(ctx, jobID)
	assert.ErrorIs(t, err, progress.ErrNotFound)
	_, err = ch.ReadJobTitle(ctx, jobID)
	assert.ErrorIs(t, err, progress.ErrNotFound)
	_, err = ch.ReadResult(ctx, jobID)
	assert.ErrorIs(t, err, progress.ErrNotFound)
}
