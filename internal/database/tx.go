package database

import (
	"context"

	"gorm.io/gorm"
)

// InTransaction runs work inside a single transaction on a fresh session and
// returns its result. On success the transaction is committed. On any error or
// panic it is rolled back if still active, and the failure is reported as an
// *Error: errors already in the taxonomy pass through, store failures become
// KindDataAccess and everything else becomes KindUnexpected. The session's
// connection is returned to the pool on every path.
func InTransaction[T any](ctx context.Context, f *SessionFactory, work func(tx *gorm.DB) (T, error)) (result T, err error) {
	var zero T

	tx := f.Session(ctx).Begin()
	if tx.Error != nil {
		return zero, classify(tx.Error)
	}

	active := true
	defer func() {
		if r := recover(); r != nil {
			err = Unexpected(panicError(r))
			result = zero
		}
		if dbErr, ok := AsError(err); ok && dbErr.Kind == KindUnexpected {
			f.log.Error("Unexpected failure in transaction", "error", err)
		}
		if err != nil && active {
			if rbErr := tx.Rollback().Error; rbErr != nil {
				f.log.Warn("Rollback failed", "error", rbErr)
			} else {
				f.log.Warn("Transaction rolled back", "error", err)
			}
		}
		f.log.Debug("Session released")
	}()

	result, err = work(tx)
	if err != nil {
		return zero, classify(err)
	}

	if cErr := tx.Commit().Error; cErr != nil {
		// A failed commit leaves nothing to roll back.
		active = false
		return zero, classify(cErr)
	}
	active = false
	return result, nil
}

// RunInTransaction is InTransaction for work without a result value.
func (f *SessionFactory) RunInTransaction(ctx context.Context, work func(tx *gorm.DB) error) error {
	_, err := InTransaction(ctx, f, func(tx *gorm.DB) (struct{}, error) {
		return struct{}{}, work(tx)
	})
	return err
}
