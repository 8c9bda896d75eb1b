package sql

import (
	"context"
	"fmt"

	"github.com/Roma7-7-7/finnish-word-bot/internal/dal"
)

func (r *SQLiteRepository) ListWords(ctx context.Context) ([]string, error) {
	sql, args, err := dal.ListWordsQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	rows, err := r.client.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	res := make([]string, 0, 1024) //nolint:mnd // typical catalog size
	for rows.Next() {
		var w string
		if err = rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		res = append(res, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}

	return res, nil
}

func (r *SQLiteRepository) CountWords(ctx context.Context) (int, error) {
	sql, args, err := dal.CountWordsQuery().ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err = r.client.QueryRowContext(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return total, nil
}

// AddWords inserts words that are not in the catalog yet and returns how many were added.
func (r *SQLiteRepository) AddWords(ctx context.Context, words []string) (int, error) {
	added := 0
	for _, w := range words {
		sql, args, err := dal.AddWordQuery(w).ToSql()
		if err != nil {
			return added, fmt.Errorf("build insert query: %w", err)
		}

		res, err := r.client.ExecContext(ctx, sql, args...)
		if err != nil {
			return added, fmt.Errorf("add word %q: %w", w, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("get rows affected: %w", err)
		}
		added += int(n)
	}

	r.log.DebugContext(ctx, "added words", "added", added, "total", len(words))
	return added, nil
}
