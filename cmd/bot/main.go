package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Roma7-7-7/finnish-word-bot/internal/app"
	"github.com/Roma7-7-7/finnish-word-bot/internal/config"
	"github.com/Roma7-7-7/finnish-word-bot/internal/schedule"
)

var (
	// Version is set via -ldflags at build time
	Version = "dev" //nolint:gochecknoglobals // must be global to be replaced at build time
	// BuildTime is set via -ldflags at build time
	BuildTime = "unknown" //nolint:gochecknoglobals // must be global to be replaced at build time
)

const (
	exitCodeOK int = iota
	exitCodeConfigParse
	exitCodeSetup
	exitCodeNotPublished
	exitCodeUsage
)

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	go func() {
		<-sigs
		cancel()
	}()
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.WarnContext(ctx, "failed to load .env file", "error", err) //nolint:sloglint // app logger is not configured yet
	}

	root := newRootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		return exitCodeUsage
	}

	return exitCodeOK
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "bot",
		Short:         "Finnish word of the day bot",
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPostCommand(), newRunCommand(), newPreviewCommand())
	return root
}

func newPostCommand() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Fetch today's word and publish it once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			conf, log, err := setup(ctx)
			if err != nil {
				return err
			}

			a, err := app.New(ctx, conf, log, cmd.OutOrStdout(), dryRun)
			if err != nil {
				log.ErrorContext(ctx, "failed to create app", "error", err)
				return &exitError{code: exitCodeSetup}
			}
			defer a.Close()

			if !a.Run(ctx) {
				return &exitError{code: exitCodeNotPublished}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the post instead of publishing it")
	return cmd
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Publish the word of the day on the configured schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			conf, log, err := setup(ctx)
			if err != nil {
				return err
			}

			a, err := app.New(ctx, conf, log, cmd.OutOrStdout(), false)
			if err != nil {
				log.ErrorContext(ctx, "failed to create app", "error", err)
				return &exitError{code: exitCodeSetup}
			}
			defer a.Close()

			err = schedule.StartDaily(ctx, schedule.DailyConfig{
				Spec:     conf.Schedule.Cron,
				Location: conf.Schedule.MustTimeLocation(),
			}, a.Run, log)
			if err != nil {
				log.ErrorContext(ctx, "failed to start schedule", "error", err)
				return &exitError{code: exitCodeSetup}
			}
			return nil
		},
	}
}

func newPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Print today's post without publishing it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			conf, log, err := setup(ctx)
			if err != nil {
				return err
			}

			a, err := app.New(ctx, conf, log, cmd.OutOrStdout(), true)
			if err != nil {
				log.ErrorContext(ctx, "failed to create app", "error", err)
				return &exitError{code: exitCodeSetup}
			}
			defer a.Close()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.Runner.Compose(ctx))
			return err
		},
	}
}

func setup(ctx context.Context) (*config.Bot, *slog.Logger, error) {
	conf, err := config.GetBot(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get config", "error", err) //nolint:sloglint // app logger is not configured yet
		return nil, nil, &exitError{code: exitCodeConfigParse}
	}

	log := app.NewLogger(conf.Dev)
	log.InfoContext(ctx, "starting bot",
		"version", Version,
		"build_time", BuildTime,
		"config", app.LoggableConfig(conf),
		"current_time_in_location", time.Now().In(conf.Schedule.MustTimeLocation()),
	)
	return conf, log, nil
}
