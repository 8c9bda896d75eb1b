package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	appctx "github.com/Roma7-7-7/finnish-word-bot/internal/context"
	"github.com/Roma7-7-7/finnish-word-bot/internal/daily"
	"github.com/Roma7-7-7/finnish-word-bot/internal/post"
	"github.com/Roma7-7-7/finnish-word-bot/internal/source"
)

//go:generate mockgen -source=runner.go -destination=../mocks/bot/mock_publisher.go -package=mock_bot

type (
	// Publisher posts finished text and returns the ID the platform assigned to it.
	Publisher interface {
		Publish(ctx context.Context, text string) (string, error)
	}

	Runner struct {
		source    source.Source
		formatter post.Formatter
		publisher Publisher
		location  *time.Location
		now       func() time.Time
		log       *slog.Logger
	}

	Option func(*Runner)
)

// WithClock overrides the time source used to compute today's date key.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

func NewRunner(src source.Source, formatter post.Formatter, publisher Publisher, location *time.Location, log *slog.Logger, opts ...Option) *Runner {
	res := &Runner{
		source:    src,
		formatter: formatter,
		publisher: publisher,
		location:  location,
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Run fetches today's word, formats it and publishes it once. It reports whether the
// post was published; failures are logged, never retried.
func (r *Runner) Run(ctx context.Context) bool {
	ctx = withRunID(ctx)

	text := r.Compose(ctx)
	r.log.InfoContext(ctx, "post to publish", "text", text)

	id, err := r.publisher.Publish(ctx, text)
	if err != nil {
		r.log.ErrorContext(ctx, "failed to publish post", "error", err)
		return false
	}

	r.log.InfoContext(ctx, "post published", "id", id)
	return true
}

// Compose runs the fetch, select and format steps and returns the post text.
func (r *Runner) Compose(ctx context.Context) string {
	ctx = withRunID(ctx)

	content, ok := r.source.Fetch(ctx)
	switch {
	case !ok || content.Empty():
		r.log.WarnContext(ctx, "no word available today, using fallback post")
		return r.formatter.Fallback()
	case content.Record != nil:
		return r.formatter.Record(*content.Record)
	default:
		key := daily.Key(r.now(), r.location)
		w := daily.Pick(content.List, key)
		r.log.InfoContext(ctx, "selected word of the day", "date", key, "word", w, "candidates", len(content.List))
		return r.formatter.Word(w)
	}
}

func withRunID(ctx context.Context) context.Context {
	if _, ok := appctx.RunIDFromContext(ctx); ok {
		return ctx
	}
	return appctx.WithRunID(ctx, uuid.NewString())
}

// Writer is a Publisher that prints posts instead of sending them.
type Writer struct {
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Publish(_ context.Context, text string) (string, error) {
	if _, err := fmt.Fprintf(w.out, "%s\n", text); err != nil {
		return "", fmt.Errorf("write post: %w", err)
	}
	return "stdout", nil
}
