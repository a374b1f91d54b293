package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrInsufficientCredits is returned by DebitCredit when the user's balance
// is below one credit at debit time.
var ErrInsufficientCredits = errors.New("storage: insufficient credits")

// GetCredits reads the user's current credit balance on a fresh connection.
func (db *DB) GetCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	var credits int
	err := db.pool.QueryRow(ctx,
		`SELECT credits FROM users WHERE id = $1`, userID,
	).Scan(&credits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return 0, fmt.Errorf("storage: get credits: %w", err)
	}
	return credits, nil
}

// DebitCredit decrements the user's balance by one in a single conditional
// UPDATE. The credits >= 1 guard plus the affected-row check closes the
// read-check-then-decrement race between concurrent jobs for one user.
func (db *DB) DebitCredit(ctx context.Context, userID uuid.UUID) error {
	err := WithRetry(ctx, 3, 50*time.Millisecond, func() error {
		tag, execErr := db.pool.Exec(ctx,
			`UPDATE users SET credits = credits - 1 WHERE id = $1 AND credits >= 1`, userID,
		)
		if execErr != nil {
			return execErr
		}
		if tag.RowsAffected() == 0 {
			return ErrInsufficientCredits
		}
		return nil
	})
	if errors.Is(err, ErrInsufficientCredits) {
		return err
	}
	if err != nil {
		return fmt.Errorf("storage: debit credit: %w", err)
	}
	db.logger.Debug("storage: credit debited", "user_id", userID)
	return nil
}
