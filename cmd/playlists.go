package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/plx/internal/collection"
	"github.com/desertthunder/plx/internal/formatter"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
	"github.com/desertthunder/plx/internal/tasks"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// PlaylistsList prints all playlists.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	c := r.playlistController()
	if err := c.Mount(ctx, ""); err != nil {
		return fmt.Errorf("failed to fetch playlists: %w", err)
	}
	playlists := c.Entities()

	switch format {
	case formatter.FormatTable:
		formatter.WritePlaylists(r.output, playlists)
		return nil
	case formatter.FormatJSON:
		return r.writeJSON(playlists, true)
	case formatter.FormatYAML:
		data, err := yaml.Marshal(playlists)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return r.writePlain("%s", data)
	default:
		return fmt.Errorf("%w: playlists cannot be listed as %s", shared.ErrInvalidFlag, format)
	}
}

// PlaylistsCreate creates a playlist titled by the first argument.
func (r *Runner) PlaylistsCreate(ctx context.Context, cmd *cli.Command) error {
	form := collection.NewPlaylistForm()
	if err := form.Set(collection.FieldTitle, cmd.StringArg("title")); err != nil {
		return err
	}

	created, err := r.playlistController().HandleCreate(ctx, form)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Created playlist %s (%s)\n", created.Title, created.ID)
}

// PlaylistsRename changes the title of a playlist.
func (r *Runner) PlaylistsRename(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	title := strings.TrimSpace(cmd.StringArg("title"))
	if id == "" || title == "" {
		return fmt.Errorf("%w: ID and TITLE are required", shared.ErrMissingArgument)
	}

	updated, err := r.playlistController().HandleEdit(ctx, models.Playlist{ID: id}, title)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Renamed playlist %s to %s\n", updated.ID, updated.Title)
}

// PlaylistsDelete deletes a playlist after confirmation. Its items are deleted with it.
func (r *Runner) PlaylistsDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: ID is required", shared.ErrMissingArgument)
	}

	c := r.playlistController()
	if !cmd.Bool("yes") {
		c.Confirm = func(p models.Playlist) bool {
			return r.confirm(fmt.Sprintf("Delete playlist %s and all of its items?", p.ID))
		}
	}

	issued, err := c.HandleDelete(ctx, models.Playlist{ID: id})
	if err != nil {
		return err
	}
	if !issued {
		return r.writePlain("Aborted\n")
	}
	return r.writePlain("✓ Deleted playlist %s\n", id)
}

// PlaylistsExport writes every playlist, and optionally the unfiled bucket, to one file each.
func (r *Runner) PlaylistsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	playlists, err := r.playlists.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch playlists: %w", err)
	}

	opts := tasks.ExportOpts{
		Format:         format,
		OutputDir:      cmd.String("dir"),
		NumWorkers:     int(cmd.Int("workers")),
		RateLimit:      cmd.Float("rate"),
		IncludeUnfiled: cmd.Bool("unfiled"),
	}

	r.logger.Info("starting export", "playlists", len(playlists), "format", format)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchItems:
				r.logger.Debug(update.Message, "step", update.Step, "total", update.Total)
			default:
				r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
			}
		}
	}()

	result, err := r.engine.Export(ctx, progressCh, r.items, playlists, opts)
	close(progressCh)
	<-done

	if result == nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Exported: %d/%d\n", result.SuccessfulExports, result.TotalPlaylists)
	if result.ManifestPath != "" {
		r.writePlain("Manifest: %s\n", result.ManifestPath)
	}

	if result.FailedExports > 0 {
		r.writePlain("\nFailed exports:\n")
		for _, res := range result.Results {
			if !res.Success() {
				r.writePlain("  - %s: %s\n", res.Title, res.Error)
			}
		}
	}

	return err
}
