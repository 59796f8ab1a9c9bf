package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/fantasy-livescore/internal/platform/querybuilder"
)

// insertBatchSize keeps multi-row inserts well below postgres' 65535 bind parameter cap.
const insertBatchSize = 500

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isBindParameterMismatch matches pgbouncer transaction pooling reusing an unnamed statement.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "bind message supplies") && strings.Contains(text, "prepared statement")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "unnamed prepared statement does not exist") ||
		(strings.Contains(text, "prepared statement") && strings.Contains(text, "26000"))
}

// isRetryablePreparedError reports failures worth one more attempt on a fresh connection.
func isRetryablePreparedError(err error) bool {
	return isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err)
}

func selectWithRetry(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	err := db.SelectContext(ctx, dest, query, args...)
	if isRetryablePreparedError(err) {
		err = db.SelectContext(ctx, dest, query, args...)
	}
	return err
}

func chunks[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = insertBatchSize
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

// upsertModels writes rows in batches inside one transaction.
func upsertModels[T any](
	ctx context.Context,
	db *sqlx.DB,
	table string,
	rows []T,
	conflict []string,
	update ...string,
) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert %s: %w", table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := execUpsert(ctx, tx, table, rows, conflict, update...); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert %s tx: %w", table, err)
	}
	return nil
}

func execUpsert[T any](
	ctx context.Context,
	tx *sqlx.Tx,
	table string,
	rows []T,
	conflict []string,
	update ...string,
) error {
	for _, batch := range chunks(rows, insertBatchSize) {
		builder, err := qb.InsertModels(table, batch)
		if err != nil {
			return fmt.Errorf("build upsert %s query: %w", table, err)
		}
		query, args, err := builder.OnConflict(conflict...).DoUpdate(update...).ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert %s: %w", table, err)
		}
	}
	return nil
}
