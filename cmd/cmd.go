// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func yesFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}
}

func formatFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   usage,
		Value:   "table",
	}
}

// setupCommand initializes configuration and the local database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and the local database",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the example configuration file",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Create the database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Revert the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupRollback,
			},
		},
	}
}

// playlistsCommand handles playlist operations
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List playlists, newest first",
				Flags:  []cli.Flag{formatFlag("Output format (table, json, yaml)")},
				Action: r.PlaylistsList,
			},
			{
				Name:      "create",
				Usage:     "Create a playlist",
				ArgsUsage: "TITLE",
				Arguments: []cli.Argument{&cli.StringArg{Name: "title"}},
				Action:    r.PlaylistsCreate,
			},
			{
				Name:      "rename",
				Usage:     "Rename a playlist",
				ArgsUsage: "ID TITLE",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}, &cli.StringArg{Name: "title"}},
				Action:    r.PlaylistsRename,
			},
			{
				Name:      "delete",
				Usage:     "Delete a playlist and its items",
				ArgsUsage: "ID",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     []cli.Flag{yesFlag()},
				Action:    r.PlaylistsDelete,
			},
			{
				Name:  "export",
				Usage: "Export every playlist to files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: plx_export_{epoch})",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (csv, markdown, txt, json, yaml)",
						Value: "json",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent workers (max 10)",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "List requests per second",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "unfiled",
						Usage: "Also export items that belong to no playlist",
					},
				},
				Action: r.PlaylistsExport,
			},
		},
	}
}

// itemsCommand handles item operations
func itemsCommand(r *Runner) *cli.Command {
	playlistFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "playlist",
			Aliases: []string{"p"},
			Usage:   "Playlist ID (default: unfiled items)",
		}
	}

	return &cli.Command{
		Name:  "items",
		Usage: "Item operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List the items of a playlist",
				Flags:  []cli.Flag{playlistFlag(), formatFlag("Output format (table, csv, markdown, txt, json, yaml)")},
				Action: r.ItemsList,
			},
			{
				Name:      "add",
				Usage:     "Add an item by URL",
				ArgsUsage: "URL",
				Arguments: []cli.Argument{&cli.StringArg{Name: "url"}},
				Flags:     []cli.Flag{playlistFlag()},
				Action:    r.ItemsAdd,
			},
			{
				Name:      "edit",
				Usage:     "Change the URL of an item",
				ArgsUsage: "ID URL",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}, &cli.StringArg{Name: "url"}},
				Action:    r.ItemsEdit,
			},
			{
				Name:      "delete",
				Usage:     "Delete an item",
				ArgsUsage: "ID",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     []cli.Flag{yesFlag()},
				Action:    r.ItemsDelete,
			},
			{
				Name:  "import",
				Usage: "Add one item per URL line of a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "File with one URL per line, or - for stdin",
						Required: true,
					},
					playlistFlag(),
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Creates per second (default: import.rate_limit)",
					},
				},
				Action: r.ItemsImport,
			},
		},
	}
}

// securityCommand handles the stored provider credentials
func securityCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "security",
		Usage: "Provider credential settings",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the stored settings",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "reveal",
						Usage: "Print values unmasked",
					},
				},
				Action: r.SecurityShow,
			},
			{
				Name:      "set",
				Usage:     "Update one setting",
				ArgsUsage: "KEY VALUE",
				Arguments: []cli.Argument{&cli.StringArg{Name: "key"}, &cli.StringArg{Name: "value"}},
				Action:    r.SecuritySet,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the backend",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Direct GET to the backend, prints raw JSON",
				ArgsUsage: "PATH",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// serveCommand runs the local backend
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the local playlist backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default: server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default: server.port)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite database path (default: database.path)",
			},
			&cli.BoolFlag{
				Name:  "security-page",
				Usage: "Expose the security settings resource",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand launches the interactive client
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive terminal client",
		Action: r.TUI,
	}
}
