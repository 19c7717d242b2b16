package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/plx/internal/formatter"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
	"github.com/urfave/cli/v3"
)

// SecurityShow prints the stored provider settings, masked unless --reveal is set.
func (r *Runner) SecurityShow(ctx context.Context, cmd *cli.Command) error {
	settings, err := r.security.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch security settings: %w", err)
	}
	formatter.WriteSettings(r.output, settings.Fields(), cmd.Bool("reveal"))
	return nil
}

// SecuritySet updates one setting. The backend receives the full settings object.
func (r *Runner) SecuritySet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	value := cmd.StringArg("value")
	if key == "" {
		return fmt.Errorf("%w: KEY is required", shared.ErrMissingArgument)
	}

	c := r.securityController()
	if err := c.Mount(ctx, ""); err != nil {
		return fmt.Errorf("failed to fetch security settings: %w", err)
	}
	defer c.Unmount()

	field, ok := c.Get(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q (one of %v)", shared.ErrInvalidArgument, key, models.SettingKeys)
	}

	if _, err := c.HandleEdit(ctx, field, value); err != nil {
		return err
	}
	return r.writePlain("✓ Updated %s = %s\n", key, formatter.Mask(value))
}
