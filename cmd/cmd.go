// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, accountCommand, moviesCommand, tvCommand, peopleCommand,
		searchCommand, genresCommand, favoritesCommand, reviewCommand,
		serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// setupCommand handles setup operations for the database and config file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Create a config.toml from the embedded template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the new config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// accountCommand handles identity operations
func accountCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "account",
		Aliases: []string{"acct"},
		Usage:   "Manage the signed-in account",
		Commands: []*cli.Command{
			{
				Name:  "signup",
				Usage: "Create an account with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Password",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Display name",
					},
				},
				Action: r.AccountSignup,
			},
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Password",
						Required: true,
					},
				},
				Action: r.AccountLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the cached session",
				Action: r.AccountLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the current session",
				Action: r.AccountStatus,
			},
			{
				Name:  "delete",
				Usage: "Delete the account, its favorites, and the session",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Password, used to reauthenticate if the session is stale",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Skip the confirmation prompt",
					},
				},
				Action: r.AccountDelete,
			},
		},
	}
}

// moviesCommand handles movie catalog operations
func moviesCommand(r *Runner) *cli.Command {
	pageFlag := &cli.IntFlag{
		Name:  "page",
		Usage: "Result page",
		Value: 1,
	}
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}

	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"movie", "m"},
		Usage:   "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "info",
				Usage: "Full movie details with trailer, cast, and similar titles",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					jsonFlag,
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the TMDB page in the browser",
					},
				},
				Action: r.MovieInfo,
			},
			{
				Name:   "top-rated",
				Usage:  "Top-rated movies",
				Flags:  []cli.Flag{pageFlag, jsonFlag},
				Action: r.MoviesTopRated,
			},
			{
				Name:   "now-playing",
				Usage:  "Movies currently in theaters",
				Flags:  []cli.Flag{pageFlag, jsonFlag},
				Action: r.MoviesNowPlaying,
			},
			{
				Name:   "trending",
				Usage:  "This week's trending movies",
				Flags:  []cli.Flag{jsonFlag},
				Action: r.MoviesTrending,
			},
			{
				Name:   "popular",
				Usage:  "Popular movies",
				Flags:  []cli.Flag{pageFlag, jsonFlag},
				Action: r.MoviesPopular,
			},
			{
				Name:  "discover",
				Usage: "Filtered discovery queries",
				Flags: []cli.Flag{
					pageFlag, jsonFlag,
					&cli.StringSliceFlag{
						Name:  "genre",
						Usage: "Genre ID filter (repeatable)",
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "Release year",
					},
					&cli.IntFlag{
						Name:  "year-from",
						Usage: "Release year lower bound",
					},
					&cli.IntFlag{
						Name:  "year-to",
						Usage: "Release year upper bound",
					},
					&cli.StringFlag{
						Name:  "language",
						Usage: "Original language (ISO 639-1)",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order (e.g. popularity.desc, revenue.desc)",
					},
					&cli.StringFlag{
						Name:  "watch-provider",
						Usage: "Watch provider ID for streaming filters",
					},
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Keep only titles starting with this prefix",
					},
				},
				Action: r.MoviesDiscover,
			},
			{
				Name:  "collection",
				Usage: "A movie collection (franchise) and its parts",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{jsonFlag},
				Action: r.MovieCollection,
			},
		},
	}
}

// tvCommand handles TV catalog operations
func tvCommand(r *Runner) *cli.Command {
	pageFlag := &cli.IntFlag{
		Name:  "page",
		Usage: "Result page",
		Value: 1,
	}
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}

	return &cli.Command{
		Name:  "tv",
		Usage: "Browse the TV catalog",
		Commands: []*cli.Command{
			{
				Name:  "info",
				Usage: "Full show details with trailer, cast, and similar shows",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					jsonFlag,
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the TMDB page in the browser",
					},
				},
				Action: r.TVInfo,
			},
			{
				Name:   "popular",
				Usage:  "Popular TV shows",
				Flags:  []cli.Flag{pageFlag, jsonFlag},
				Action: r.TVPopular,
			},
			{
				Name:  "discover",
				Usage: "Filtered discovery queries",
				Flags: []cli.Flag{
					pageFlag, jsonFlag,
					&cli.StringSliceFlag{
						Name:  "genre",
						Usage: "Genre ID filter (repeatable)",
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "First air year",
					},
					&cli.StringFlag{
						Name:  "language",
						Usage: "Original language (ISO 639-1)",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order (e.g. popularity.desc)",
					},
				},
				Action: r.TVDiscover,
			},
		},
	}
}

// peopleCommand handles person catalog operations
func peopleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "people",
		Aliases: []string{"person"},
		Usage:   "Browse people",
		Commands: []*cli.Command{
			{
				Name:  "info",
				Usage: "Person details with movie credits",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PersonInfo,
			},
			{
				Name:  "popular",
				Usage: "Popular people",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "page",
						Usage: "Result page",
						Value: 1,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PeoplePopular,
			},
		},
	}
}

// searchCommand handles multi-search
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search movies, TV shows, and people",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Result page",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Search,
	}
}

// genresCommand lists genre IDs for discover filters
func genresCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "genres",
		Usage: "List genre IDs for discover filters",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Usage: "movie or tv",
				Value: "movie",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Genres,
	}
}

// favoritesCommand handles favorites operations
func favoritesCommand(r *Runner) *cli.Command {
	categoryFlag := &cli.StringFlag{
		Name:    "category",
		Aliases: []string{"t"},
		Usage:   "movies, tv, or actors",
		Value:   "movies",
	}

	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage the signed-in account's favorites",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all favorites by category",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.FavoritesList,
			},
			{
				Name:  "add",
				Usage: "Add an item to favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{categoryFlag},
				Action: r.FavoritesAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove an item from favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{categoryFlag},
				Action: r.FavoritesRemove,
			},
			{
				Name:  "toggle",
				Usage: "Flip an item's favorite status",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{categoryFlag},
				Action: r.FavoritesToggle,
			},
			{
				Name:  "export",
				Usage: "Export favorites with full details to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "json, csv, markdown, or txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path without extension",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent detail fetches",
						Value: 5,
					},
				},
				Action: r.FavoritesExport,
			},
			{
				Name:   "migrate",
				Usage:  "Push legacy local favorites to the remote store",
				Action: r.FavoritesMigrate,
			},
		},
	}
}

// reviewCommand handles locally stored review submissions
func reviewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: "Store and list review submissions",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Store a review locally",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Reviewer name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "email",
						Usage: "Reviewer email",
					},
					&cli.StringFlag{
						Name:     "subject",
						Usage:    "Movie or show the review is about",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "body",
						Usage:    "Review text",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "rating",
						Usage: "Rating from 1 to 10",
					},
				},
				Action: r.ReviewAdd,
			},
			{
				Name:  "list",
				Usage: "List stored reviews",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "subject",
						Usage: "Filter by subject",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ReviewList,
			},
		},
	}
}

// serveCommand starts the local read-only API server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local read-only JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Bind address (defaults to [server] host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Bind port (defaults to [server] port)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive discovery.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive discovery browser",
		Action:  r.TUI,
	}
}
