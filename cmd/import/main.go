package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Roma7-7-7/finnish-word-bot/internal/app"
	"github.com/Roma7-7-7/finnish-word-bot/internal/dal"
	sqlrepo "github.com/Roma7-7-7/finnish-word-bot/internal/dal/sql"
	"github.com/Roma7-7-7/finnish-word-bot/internal/data"
)

const importTimeout = 1 * time.Minute

func main() {
	if err := newImportCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newImportCommand() *cobra.Command {
	var (
		source string
		dbPath string
		dev    bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a newline-delimited word list into the word catalog",
		Long: "Words are trimmed and entries shorter than three characters are skipped. " +
			"New words are appended after the existing ones; appending changes which word " +
			"is selected on future days.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if source == "" {
				return errors.New("source file is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), importTimeout)
			defer cancel()

			f, err := os.Open(source)
			if err != nil {
				return fmt.Errorf("open source file: %w", err)
			}
			defer f.Close()

			added, total, err := importWords(ctx, f, dbPath, dev)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "done: %d new words, %d in catalog\n", added, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "source file")
	cmd.Flags().StringVar(&dbPath, "db-path", "words.db", "word catalog database path")
	cmd.Flags().BoolVar(&dev, "dev", false, "debug logging")
	return cmd
}

func importWords(ctx context.Context, in io.Reader, dbPath string, dev bool) (int, int, error) {
	words, err := data.ParseWords(in)
	if err != nil {
		return 0, 0, fmt.Errorf("parse words: %w", err)
	}

	db, err := app.OpenDB(dbPath)
	if err != nil {
		return 0, 0, err
	}
	defer db.Close()

	repo := sqlrepo.NewSQLiteRepository(db, app.NewLogger(dev))
	if err = repo.Migrate(ctx); err != nil {
		return 0, 0, fmt.Errorf("migrate: %w", err)
	}

	var added, total int
	err = repo.Transact(ctx, func(r dal.Repository) error {
		if added, err = r.AddWords(ctx, words); err != nil {
			return err
		}
		total, err = r.CountWords(ctx)
		return err
	})
	if err != nil {
		return 0, 0, fmt.Errorf("import words: %w", err)
	}

	return added, total, nil
}
