package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/marquee/internal/formatter"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for favorites exports.
type ExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputPath string  // Output file path without extension (default: favorites_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Requests per second (default: 5)
}

// FavoritesExportResult summarizes an export run.
type FavoritesExportResult struct {
	TotalItems   int
	Exported     int
	Failed       int
	OutputPath   string
	ManifestPath string
	Errors       []EndpointResult
}

type exportJob struct {
	category models.Category
	id       string
}

type exportOutcome struct {
	item models.Category
	data *formatter.ExportItem
	err  error
	id   string
}

// ExportEngine hydrates the account's favorites into full records and
// writes them to disk in the requested format.
type ExportEngine struct {
	accessor *FavoritesAccessor
	metadata services.Metadata
}

// NewExportEngine creates an ExportEngine over the given accessor and metadata service.
func NewExportEngine(accessor *FavoritesAccessor, metadata services.Metadata) *ExportEngine {
	return &ExportEngine{accessor: accessor, metadata: metadata}
}

// Export fetches details for every favorite concurrently with rate limiting
// and writes a single export file. Items whose detail fetch fails are
// skipped and reported in the result.
func (e *ExportEngine) Export(ctx context.Context, progress chan<- ProgressUpdate, opts ExportOpts) (*FavoritesExportResult, error) {
	if e.metadata == nil {
		return nil, fmt.Errorf("%w: metadata service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputPath == "" {
		opts.OutputPath = fmt.Sprintf("favorites_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	doc, err := e.accessor.Favorites(ctx)
	if err != nil {
		return nil, err
	}

	var pending []exportJob
	for _, category := range models.AllCategories() {
		for _, id := range doc.Set(category) {
			pending = append(pending, exportJob{category: category, id: id})
		}
	}

	result := &FavoritesExportResult{TotalItems: len(pending)}
	if len(pending) == 0 {
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan exportJob, len(pending))
	outcomes := make(chan exportOutcome, len(pending))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, limiter, jobs, outcomes)
	}

	for _, job := range pending {
		jobs <- job
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	items := make([]formatter.ExportItem, 0, len(pending))
	completed := 0
	for outcome := range outcomes {
		completed++

		if outcome.err != nil {
			result.Failed++
			result.Errors = append(result.Errors, EndpointResult{
				Endpoint: fmt.Sprintf("%s/%s", outcome.item, outcome.id),
				Error:    outcome.err,
			})
			continue
		}

		result.Exported++
		items = append(items, *outcome.data)
		sendProgress(progress, exportItemUpdate(completed, len(pending), outcome.data.Title))
	}

	written, err := formatter.WriteFavoritesExport(items, opts.Format, opts.OutputPath)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to write file: %w", err)
	}
	result.OutputPath = written

	failures := make([]string, 0, len(result.Errors))
	for _, failure := range result.Errors {
		failures = append(failures, failure.Endpoint)
	}

	manifestPath := opts.OutputPath + ".manifest.json"
	if err := formatter.WriteExportManifest(formatter.ExportManifest{
		Format:     opts.Format,
		OutputPath: written,
		TotalItems: result.TotalItems,
		Exported:   result.Exported,
		Failed:     result.Failed,
		Failures:   failures,
	}, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	return result, nil
}

// exportWorker is a worker goroutine that hydrates favorites from the jobs channel.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan exportJob,
	outcomes chan<- exportOutcome,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := limiter.Wait(ctx); err != nil {
			return
		}

		item, err := e.hydrate(ctx, job)
		outcomes <- exportOutcome{item: job.category, id: job.id, data: item, err: err}
	}
}

// hydrate fetches the full record behind one favorite ID.
func (e *ExportEngine) hydrate(ctx context.Context, job exportJob) (*formatter.ExportItem, error) {
	switch job.category {
	case models.CategoryMovies:
		movie, err := e.metadata.Movie(ctx, job.id)
		if err != nil {
			return nil, err
		}
		return &formatter.ExportItem{
			Category: string(job.category),
			ID:       job.id,
			Title:    movie.Title,
			Overview: movie.Overview,
			Date:     movie.ReleaseDate,
			Rating:   movie.VoteAverage,
			Poster:   movie.PosterURL(),
			Page:     movie.PageURL(),
		}, nil

	case models.CategoryTV:
		show, err := e.metadata.TVShow(ctx, job.id)
		if err != nil {
			return nil, err
		}
		return &formatter.ExportItem{
			Category: string(job.category),
			ID:       job.id,
			Title:    show.Name,
			Overview: show.Overview,
			Date:     show.FirstAirDate,
			Rating:   show.VoteAverage,
			Poster:   show.PosterURL(),
			Page:     show.PageURL(),
		}, nil

	case models.CategoryActors:
		person, err := e.metadata.Person(ctx, job.id)
		if err != nil {
			return nil, err
		}
		return &formatter.ExportItem{
			Category: string(job.category),
			ID:       job.id,
			Title:    person.Name,
			Overview: person.Biography,
			Date:     person.Birthday,
			Poster:   person.ProfileURL(),
		}, nil
	}

	return nil, fmt.Errorf("%w: unknown category %q", shared.ErrInvalidInput, job.category)
}
