package dal

import (
	"context"
)

type (
	WordsRepository interface {
		ListWords(ctx context.Context) ([]string, error)
		CountWords(ctx context.Context) (int, error)
		AddWords(ctx context.Context, words []string) (int, error)
	}

	Repository interface {
		Transact(ctx context.Context, txFunc func(r Repository) error) error
		Migrate(ctx context.Context) error
		WordsRepository
	}
)
