package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/repositories"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	metadata   services.Metadata
	identity   services.Identity
	store      services.DocumentStore
	db         *sql.DB
	reviews    models.Repository[*models.Review]
	legacy     models.Repository[*models.LegacyFavorite]
	jobs       models.Repository[*models.SyncJob]
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	accessor *tasks.FavoritesAccessor
	toggles  *tasks.ToggleController
	details  *tasks.DetailEngine
	account  *tasks.AccountEngine
	exporter *tasks.ExportEngine
	syncer   *tasks.SyncEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Metadata   services.Metadata
	Identity   services.Identity
	Store      services.DocumentStore
	DB         *sql.DB
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		metadata:   opts.Metadata,
		identity:   opts.Identity,
		store:      opts.Store,
		db:         opts.DB,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}

	if opts.DB != nil {
		r.reviews = repositories.NewReviewRepository(opts.DB)
		r.legacy = repositories.NewLegacyFavoriteRepository(opts.DB)
		r.jobs = repositories.NewSyncJobRepository(opts.DB)
	}

	if opts.Identity != nil && opts.Store != nil {
		r.accessor = tasks.NewFavoritesAccessor(opts.Identity, opts.Store, r.logger)
		r.toggles = tasks.NewToggleController(r.accessor)
		r.account = tasks.NewAccountEngine(opts.Identity, opts.Store)
		if opts.Metadata != nil {
			r.exporter = tasks.NewExportEngine(r.accessor, opts.Metadata)
		}
		if r.legacy != nil && r.jobs != nil {
			r.syncer = tasks.NewSyncEngine(r.accessor, r.legacy, r.jobs, opts.Logger)
		}
	}

	if opts.Metadata != nil {
		r.details = tasks.NewDetailEngine(opts.Metadata)
	}

	return r
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) requireMetadata() error {
	if r.metadata == nil {
		return fmt.Errorf("%w: TMDB service not initialized, check [tmdb] in config.toml", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) requireIdentity() error {
	if r.identity == nil {
		return fmt.Errorf("%w: identity service not initialized, check [identity] in config.toml", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) requireFavorites() error {
	if r.accessor == nil {
		return fmt.Errorf("%w: favorites require [identity] and [store] in config.toml", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) requireDatabase() error {
	if r.db == nil {
		return fmt.Errorf("%w: local database not initialized, run 'marquee setup database'", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// parseCategory maps a CLI category flag to a favorites category.
func parseCategory(value string) (models.Category, error) {
	switch value {
	case "movie", "movies":
		return models.CategoryMovies, nil
	case "tv", "show", "shows":
		return models.CategoryTV, nil
	case "actor", "actors", "person", "people":
		return models.CategoryActors, nil
	}
	return "", fmt.Errorf("%w: category must be movies, tv, or actors", shared.ErrInvalidFlag)
}
