// Package postgres provides the PostgreSQL implementations of the domain
// repositories. Every statement is built from the entities' declared mapping
// lists and bound through pgx named arguments; request values never reach the
// SQL text. Each call runs one statement, or one transaction-wrapped batch,
// against the pool and releases its connection on every exit path.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/platform/persistence"
)

// DB is the connection surface the repositories need: single statements plus
// transaction start for batches. Satisfied by *pgxpool.Pool and by pgxmock
// pools in tests.
type DB interface {
	persistence.Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// rewrite turns @name placeholders into positional ones and produces the
// matching argument slice. Rewriting is purely lexical, so it needs no
// connection.
func rewrite(ctx context.Context, sql string, args map[string]any) (string, []any, error) {
	rewritten, positional, err := pgx.NamedArgs(args).RewriteQuery(ctx, nil, sql, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to bind named arguments: %w", err)
	}
	return rewritten, positional, nil
}

// queryRows executes one parameterized SELECT and maps every returned row
// through scan.
func queryRows[T any](ctx context.Context, db persistence.Querier, sql string, args map[string]any, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rewritten, positional, err := rewrite(ctx, sql, args)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, rewritten, positional...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// insertBatch inserts the projected rows inside one transaction, one INSERT
// per row, collecting the generated ids. Any failure rolls the whole batch
// back and propagates unchanged.
func insertBatch(ctx context.Context, db DB, sql string, rows []map[string]any) ([]shared.UpsertResult, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin batch transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	results := make([]shared.UpsertResult, 0, len(rows))
	for _, row := range rows {
		rewritten, positional, err := rewrite(ctx, sql, row)
		if err != nil {
			return nil, err
		}
		var id int64
		if err := tx.QueryRow(ctx, rewritten, positional...).Scan(&id); err != nil {
			return nil, err
		}
		results = append(results, shared.UpsertResult{ID: id, RowsAffected: 1})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit batch transaction: %w", err)
	}
	return results, nil
}

// syncIdentity advances the table's identity sequence past the highest stored
// id. Id-keyed upserts insert explicit ids without touching the sequence;
// without this, a later generated id can collide with an upserted one.
func syncIdentity(ctx context.Context, db persistence.Querier, table string) error {
	sql := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))",
		table, table,
	)
	if _, err := db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to sync %s id sequence: %w", table, err)
	}
	return nil
}

// upsertRow executes one merge statement and returns the surviving row's id.
func upsertRow(ctx context.Context, db persistence.Querier, sql string, row map[string]any) (shared.UpsertResult, error) {
	rewritten, positional, err := rewrite(ctx, sql, row)
	if err != nil {
		return shared.UpsertResult{}, err
	}
	var id int64
	if err := db.QueryRow(ctx, rewritten, positional...).Scan(&id); err != nil {
		return shared.UpsertResult{}, err
	}
	return shared.UpsertResult{ID: id, RowsAffected: 1}, nil
}

// insertSQL builds INSERT INTO table (cols..., timestamps) VALUES (@col...)
// RETURNING id for projected rows stamped with both lifecycle timestamps.
func insertSQL(table string, cols []string) string {
	all := append(append([]string{}, cols...), shared.ColCreated, shared.ColLastModified)
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		table, strings.Join(all, ", "), placeholders(all),
	)
}

// upsertSQL builds the merge statement for rows stamped with last_modified
// only. created_datetime binds to the last_modified placeholder so it is set
// on an actual insert and untouched by the update arm.
func upsertSQL(table string, cols []string, conflictCols []string) string {
	insertCols := append(append([]string{}, cols...), shared.ColCreated, shared.ColLastModified)

	values := make([]string, 0, len(insertCols))
	for _, c := range insertCols {
		if c == shared.ColCreated {
			values = append(values, "@"+shared.ColLastModified)
			continue
		}
		values = append(values, "@"+c)
	}

	updates := make([]string, 0, len(cols)+1)
	for _, c := range cols {
		if contains(conflictCols, c) {
			continue
		}
		updates = append(updates, c+" = EXCLUDED."+c)
	}
	updates = append(updates, shared.ColLastModified+" = EXCLUDED."+shared.ColLastModified)

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s RETURNING id",
		table,
		strings.Join(insertCols, ", "),
		strings.Join(values, ", "),
		strings.Join(conflictCols, ", "),
		strings.Join(updates, ", "),
	)
}

func placeholders(cols []string) string {
	ph := make([]string, len(cols))
	for i, c := range cols {
		ph[i] = "@" + c
	}
	return strings.Join(ph, ", ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
