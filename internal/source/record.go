package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Roma7-7-7/finnish-word-bot/internal/word"
)

const (
	DefaultRecordURL     = "https://www.suomisanakirja.fi/wod.php"
	DefaultRecordTimeout = 10 * time.Second
)

var errMissingWord = errors.New("response has no word")

// Record fetches a single word of the day record from a JSON endpoint.
type Record struct {
	client  *resty.Client
	url     string
	retrier Retrier
	log     *slog.Logger
}

func NewRecord(url string, timeout time.Duration, retrier Retrier, log *slog.Logger) *Record {
	return &Record{
		client:  resty.New().SetTimeout(timeout),
		url:     url,
		retrier: retrier,
		log:     log,
	}
}

func (s *Record) Fetch(ctx context.Context) (word.Content, bool) {
	var rec word.Record
	ok := fetchWithRetry(ctx, s.retrier, s.log, KindRecord, func(ctx context.Context) error {
		var err error
		rec, err = s.fetch(ctx)
		return err
	})
	if !ok {
		return word.Content{}, false
	}

	s.log.DebugContext(ctx, "fetched word of the day", "word", rec.Word)
	return word.Content{Record: &rec}, true
}

func (s *Record) fetch(ctx context.Context) (word.Record, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(s.url)
	if err != nil {
		return word.Record{}, fmt.Errorf("get word of the day: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return word.Record{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var rec word.Record
	if err = json.Unmarshal(resp.Body(), &rec); err != nil {
		return word.Record{}, fmt.Errorf("unmarshal word of the day: %w", err)
	}
	rec.Word = strings.TrimSpace(rec.Word)
	rec.Definition = strings.TrimSpace(rec.Definition)
	if rec.Word == "" {
		return word.Record{}, errMissingWord
	}

	return rec, nil
}
