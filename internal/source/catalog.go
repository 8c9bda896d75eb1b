package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Roma7-7-7/finnish-word-bot/internal/data"
	"github.com/Roma7-7-7/finnish-word-bot/internal/word"
)

type WordsReader interface {
	ListWords(ctx context.Context) ([]string, error)
}

// Catalog reads the word list from the local word catalog.
type Catalog struct {
	repo    WordsReader
	retrier Retrier
	log     *slog.Logger
}

func NewCatalog(repo WordsReader, retrier Retrier, log *slog.Logger) *Catalog {
	return &Catalog{repo: repo, retrier: retrier, log: log}
}

func (s *Catalog) Fetch(ctx context.Context) (word.Content, bool) {
	var list word.List
	ok := fetchWithRetry(ctx, s.retrier, s.log, KindCatalog, func(ctx context.Context) error {
		words, err := s.repo.ListWords(ctx)
		if err != nil {
			return fmt.Errorf("list words: %w", err)
		}
		list = data.FilterWords(words)
		if len(list) == 0 {
			return permanent(errEmptyList)
		}
		return nil
	})
	if !ok {
		return word.Content{}, false
	}

	return word.Content{List: list}, true
}
