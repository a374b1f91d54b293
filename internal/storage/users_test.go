package storage_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/RohitSen1235/resumegen/internal/storage"
	"github.com/RohitSen1235/resumegen/migrations"
)

// testDB holds a shared test database connection for all tests in this package.
var testDB *storage.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "resumegen",
			"POSTGRES_PASSWORD": "resumegen",
			"POSTGRES_DB":       "resumegen",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start container: %v\n", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get container port: %v\n", err)
		os.Exit(1)
	}

	dsn := fmt.Sprintf("postgres://resumegen:resumegen@%s:%s/resumegen?sslmode=disable", host, port.Port())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	testDB, err = storage.New(ctx, dsn, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create DB: %v\n", err)
		os.Exit(1)
	}

	if err := testDB.RunMigrations(ctx, migrations.FS); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	testDB.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

// createUser inserts a user row with the given starting balance.
func createUser(t *testing.T, credits int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := testDB.Pool().Exec(context.Background(),
		`INSERT INTO users (id, email, credits) VALUES ($1, $2, $3)`,
		id, id.String()+"@example.com", credits,
	)
	require.NoError(t, err)
	return id
}

func TestGetCreditsMissingUser(t *testing.T) {
	_, err := testDB.GetCredits(context.Background(), uuid.New())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreditLifecycle(t *testing.T) {
	ctx := context.Background()
	userID := createUser(t, 2)

	credits, err := testDB.GetCredits(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, credits)

	require.NoError(t, testDB.DebitCredit(ctx, userID))
	require.NoError(t, testDB.DebitCredit(ctx, userID))

	credits, err = testDB.GetCredits(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, credits)

	err = testDB.DebitCredit(ctx, userID)
	assert.ErrorIs(t, err, storage.ErrInsufficientCredits)
}

func TestDebitCreditUnknownUser(t *testing.T) {
	err := testDB.DebitCredit(context.Background(), uuid.New())
	assert.ErrorIs(t, err, storage.ErrInsufficientCredits)
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	userID := createUser(t, 5)

	const attempts = 10
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = testDB.DebitCredit(ctx, userID)
		}()
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, storage.ErrInsufficientCredits):
			rejected++
		}
	}
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, rejected)

	credits, err := testDB.GetCredits(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, credits)
}

func TestMigrationsIdempotent(t *testing.T) {
	assert.NoError(t, testDB.RunMigrations(context.Background(), migrations.FS))
}
