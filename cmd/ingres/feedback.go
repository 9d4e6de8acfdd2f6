package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/poiesic/ingres/core"
	"github.com/poiesic/ingres/storage"
	"github.com/poiesic/ingres/storage/badger"
	"github.com/urfave/cli/v2"
)

// openFeedback opens the feedback store named in the config without
// loading the corpus or index.
func openFeedback(c *cli.Context) (storage.FeedbackRepository, func(), error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	backend, err := badger.OpenBackend(cfg.Data.FeedbackDB, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open feedback store: %w", err)
	}
	repo, err := badger.NewFeedbackRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("failed to create repository: %w", err)
	}
	return repo, func() {
		repo.Close()
		backend.Close()
	}, nil
}

func feedbackAddCommand(c *cli.Context) error {
	text, err := queryArg(c, "feedback text")
	if err != nil {
		return err
	}
	repo, closeRepo, err := openFeedback(c)
	if err != nil {
		return err
	}
	defer closeRepo()

	added, err := repo.AddFeedback(c.Context, &core.Feedback{Text: text})
	if err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Thank you! Feedback #%d saved.\n", added[0].Id)
	return nil
}

func feedbackListCommand(c *cli.Context) error {
	repo, closeRepo, err := openFeedback(c)
	if err != nil {
		return err
	}
	defer closeRepo()

	entries, err := repo.GetRecentFeedback(c.Context, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list feedback: %w", err)
	}
	writeFeedback(c.App.Writer, entries)
	return nil
}

func writeFeedback(w io.Writer, entries []*core.Feedback) {
	if w == nil {
		w = os.Stdout
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No feedback yet.")
		return
	}
	for _, f := range entries {
		fmt.Fprintf(w, "#%d  %s (%s)\n    %s\n", f.Id, f.SubmittedAt.Local().Format("2006-01-02 15:04"), humanize.Time(f.SubmittedAt), f.Text)
	}
}
