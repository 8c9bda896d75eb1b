package source

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Roma7-7-7/finnish-word-bot/internal/word"
)

//go:generate mockgen -source=source.go -destination=../mocks/source/mock_source.go -package=mock_source

const (
	KindRecord  = "record"
	KindList    = "list"
	KindCatalog = "catalog"
)

var errEmptyList = errors.New("no words left after filtering")

// Source produces today's candidate content. A false result means no data is
// available today, which callers must handle as a regular outcome.
type Source interface {
	Fetch(ctx context.Context) (word.Content, bool)
}

func fetchWithRetry(ctx context.Context, r Retrier, log *slog.Logger, name string, op func(ctx context.Context) error) bool {
	err := r.Do(ctx, op, func(attempt uint, err error) {
		log.WarnContext(ctx, "fetch attempt failed", "source", name, "attempt", attempt, "error", err)
	})
	if err != nil {
		log.ErrorContext(ctx, "all fetch attempts failed", "source", name, "error", err)
		return false
	}
	return true
}
