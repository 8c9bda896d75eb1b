package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "modernc.org/sqlite" // sqlite driver for the word catalog

	"github.com/Roma7-7-7/finnish-word-bot/internal/bot"
	"github.com/Roma7-7-7/finnish-word-bot/internal/config"
	appctx "github.com/Roma7-7-7/finnish-word-bot/internal/context"
	sqlrepo "github.com/Roma7-7-7/finnish-word-bot/internal/dal/sql"
	"github.com/Roma7-7-7/finnish-word-bot/internal/post"
	"github.com/Roma7-7-7/finnish-word-bot/internal/source"
	"github.com/Roma7-7-7/finnish-word-bot/internal/telegram"
	"github.com/Roma7-7-7/finnish-word-bot/internal/twitter"
)

// App holds a runner wired from config together with the resources it owns.
type App struct {
	Runner *bot.Runner

	closers []io.Closer
}

// New wires a runner and prepares the word catalog when it is the source. When dryRun is set posts are written to out instead of published.
func New(ctx context.Context, conf *config.Bot, log *slog.Logger, out io.Writer, dryRun bool) (*App, error) {
	res := &App{}

	src, err := res.newSource(ctx, conf, log)
	if err != nil {
		res.Close()
		return nil, err
	}

	publisher, err := newPublisher(conf, log, out, dryRun)
	if err != nil {
		res.Close()
		return nil, err
	}

	res.Runner = bot.NewRunner(src, post.NewFormatter(conf.DictionaryURL), publisher, conf.Schedule.MustTimeLocation(), log)
	return res, nil
}

func (a *App) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
}

func (a *App) newSource(ctx context.Context, conf *config.Bot, log *slog.Logger) (source.Source, error) {
	retrier := source.Retrier{Attempts: conf.Fetch.Attempts, Delay: conf.Fetch.Delay}

	switch conf.Source {
	case config.SourceRecord:
		return source.NewRecord(conf.RecordURL, conf.Fetch.RecordTimeout, retrier, log), nil
	case config.SourceList:
		return source.NewList(conf.ListURL, conf.Fetch.ListTimeout, retrier, log), nil
	case config.SourceCatalog:
		db, err := OpenDB(conf.DBPath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)

		repo := sqlrepo.NewSQLiteRepository(db, log)
		// a fresh database gets an empty catalog, which falls back at run time
		if err := repo.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate word catalog: %w", err)
		}
		return source.NewCatalog(repo, retrier, log), nil
	default:
		return nil, fmt.Errorf("unknown source %q", conf.Source)
	}
}

func newPublisher(conf *config.Bot, log *slog.Logger, out io.Writer, dryRun bool) (bot.Publisher, error) {
	if dryRun {
		return bot.NewWriter(out), nil
	}

	switch conf.Publisher {
	case config.PublisherTwitter:
		return twitter.NewClient(twitter.Credentials{
			ConsumerKey:    conf.Twitter.APIKey,
			ConsumerSecret: conf.Twitter.APISecret,
			AccessToken:    conf.Twitter.AccessToken,
			AccessSecret:   conf.Twitter.AccessSecret,
		}, conf.Twitter.APIURL, log), nil
	case config.PublisherTelegram:
		c, err := telegram.NewClient(conf.TelegramToken, conf.TelegramChatID, log)
		if err != nil {
			return nil, fmt.Errorf("create telegram client: %w", err)
		}
		return c, nil
	case config.PublisherStdout:
		return bot.NewWriter(out), nil
	default:
		return nil, fmt.Errorf("unknown publisher %q", conf.Publisher)
	}
}

// OpenDB opens the word catalog database.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return db, nil
}

// NewLogger returns a JSON info logger, or a text debug logger in dev mode. Every
// line logged with a run context carries the run ID.
func NewLogger(dev bool) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	if dev {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	return slog.New(appctx.NewLogHandler(handler))
}

// LoggableConfig is the config without secrets.
func LoggableConfig(conf *config.Bot) map[string]any {
	return map[string]any{
		"dev":            conf.Dev,
		"source":         conf.Source,
		"publisher":      conf.Publisher,
		"record-url":     conf.RecordURL,
		"list-url":       conf.ListURL,
		"dictionary-url": conf.DictionaryURL,
		"db-path":        conf.DBPath,
		"fetch": map[string]any{
			"attempts":       conf.Fetch.Attempts,
			"delay":          conf.Fetch.Delay.String(),
			"record-timeout": conf.Fetch.RecordTimeout.String(),
			"list-timeout":   conf.Fetch.ListTimeout.String(),
		},
		"schedule": map[string]any{
			"cron":     conf.Schedule.Cron,
			"location": conf.Schedule.Location,
		},
	}
}

// Run is a convenience for entrypoints that publish once.
func (a *App) Run(ctx context.Context) bool {
	return a.Runner.Run(ctx)
}
