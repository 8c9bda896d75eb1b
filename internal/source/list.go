package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Roma7-7-7/finnish-word-bot/internal/data"
	"github.com/Roma7-7-7/finnish-word-bot/internal/word"
)

const DefaultListTimeout = 30 * time.Second

// List fetches a newline-delimited word list.
type List struct {
	client  *resty.Client
	url     string
	retrier Retrier
	log     *slog.Logger
}

func NewList(url string, timeout time.Duration, retrier Retrier, log *slog.Logger) *List {
	return &List{
		client:  resty.New().SetTimeout(timeout),
		url:     url,
		retrier: retrier,
		log:     log,
	}
}

func (s *List) Fetch(ctx context.Context) (word.Content, bool) {
	var list word.List
	ok := fetchWithRetry(ctx, s.retrier, s.log, KindList, func(ctx context.Context) error {
		var err error
		list, err = s.fetch(ctx)
		return err
	})
	if !ok {
		return word.Content{}, false
	}

	s.log.DebugContext(ctx, "fetched word list", "words", len(list))
	return word.Content{List: list}, true
}

func (s *List) fetch(ctx context.Context) (word.List, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("get word list: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	list, err := data.ParseWords(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse word list: %w", err)
	}
	if len(list) == 0 {
		return nil, errEmptyList
	}

	return list, nil
}
