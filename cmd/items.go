package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/plx/internal/collection"
	"github.com/desertthunder/plx/internal/formatter"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
	"github.com/desertthunder/plx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ItemsList prints the items of --playlist, or the unfiled bucket.
func (r *Runner) ItemsList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	list, err := r.items.List(ctx, cmd.String("playlist"))
	if err != nil {
		return fmt.Errorf("failed to fetch items: %w", err)
	}

	data, err := formatter.Export(list, format)
	if err != nil {
		return err
	}
	_, err = r.output.Write(data)
	return err
}

// ItemsAdd creates an item in --playlist, or unfiled.
func (r *Runner) ItemsAdd(ctx context.Context, cmd *cli.Command) error {
	form := collection.NewItemForm()
	if err := form.Set(collection.FieldURL, cmd.StringArg("url")); err != nil {
		return err
	}

	c := r.itemController()
	if err := c.Mount(ctx, cmd.String("playlist")); err != nil {
		return fmt.Errorf("failed to open %q: %w", cmd.String("playlist"), err)
	}
	defer c.Unmount()

	created, err := c.HandleCreate(ctx, form)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Added %s to %s (%s)\n", created.URL, c.Title(), created.ID)
}

// ItemsEdit changes the URL of an item.
func (r *Runner) ItemsEdit(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	url := strings.TrimSpace(cmd.StringArg("url"))
	if id == "" || url == "" {
		return fmt.Errorf("%w: ID and URL are required", shared.ErrMissingArgument)
	}

	updated, err := r.itemController().HandleEdit(ctx, models.Item{ID: id}, url)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Updated item %s: %s\n", updated.ID, updated.URL)
}

// ItemsDelete deletes an item after confirmation.
func (r *Runner) ItemsDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: ID is required", shared.ErrMissingArgument)
	}

	c := r.itemController()
	if !cmd.Bool("yes") {
		c.Confirm = func(i models.Item) bool {
			return r.confirm(fmt.Sprintf("Delete item %s?", i.ID))
		}
	}

	issued, err := c.HandleDelete(ctx, models.Item{ID: id})
	if err != nil {
		return err
	}
	if !issued {
		return r.writePlain("Aborted\n")
	}
	return r.writePlain("✓ Deleted item %s\n", id)
}

// ItemsImport adds one item per URL in --file to --playlist.
func (r *Runner) ItemsImport(ctx context.Context, cmd *cli.Command) error {
	lines, err := r.readImport(cmd.String("file"))
	if err != nil {
		return err
	}

	playlistID := cmd.String("playlist")
	c := r.itemController()
	if err := c.Mount(ctx, playlistID); err != nil {
		return fmt.Errorf("failed to open %q: %w", playlistID, err)
	}
	defer c.Unmount()

	rateLimit := r.config.Import.RateLimit
	if cmd.IsSet("rate") {
		rateLimit = cmd.Float("rate")
	}

	r.writePlain("Importing %d URLs into %s\n", len(lines), c.Title())

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if update.Phase == tasks.ImportItems {
				r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
			}
		}
	}()

	result, err := r.engine.Import(ctx, progressCh, c, lines, tasks.ImportOpts{RateLimit: rateLimit})
	close(progressCh)
	<-done

	if result == nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Import Complete")
	r.writePlain("Created: %d/%d\n", len(result.Created), result.Total)
	if result.Skipped > 0 {
		r.writePlain("Skipped duplicates: %d\n", result.Skipped)
	}
	if result.Failed() > 0 {
		r.writePlain("\nFailed lines:\n")
		for _, lineErr := range result.Errors {
			r.writePlain("  - %v\n", lineErr)
		}
	}

	return err
}

func (r *Runner) readImport(path string) ([]tasks.ImportLine, error) {
	var in io.Reader = r.input
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()
		in = f
	}
	return tasks.ReadURLs(in)
}
