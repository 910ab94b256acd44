package postgresql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/securefront/workforce-backend-go/internal/pkg/apperror"
	"github.com/securefront/workforce-backend-go/internal/pkg/database"
)

// WithTransaction runs fn in a transaction named op. fn's error rolls the
// transaction back and is returned unchanged; begin, commit and rollback
// failures surface as storage errors.
func WithTransaction(ctx context.Context, db *database.DB, op string, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return apperror.Storage(op+": begin", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Error("Transaction rollback failed", "op", op, "error", rbErr)
			if err == nil {
				err = apperror.Storage(op+": rollback", rbErr)
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperror.Storage(op+": commit", err)
	}
	committed = true
	return nil
}
