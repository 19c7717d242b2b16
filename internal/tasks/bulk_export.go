package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/plx/internal/formatter"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for bulk playlist exports.
type ExportOpts struct {
	Format         formatter.Format // Export format (default: json)
	OutputDir      string           // Base output directory (default: plx_export_{epoch})
	NumWorkers     int              // Concurrent workers (default: 4, max: 10)
	RateLimit      float64          // List requests per second (default: 5)
	IncludeUnfiled bool             // Also export the bucket of items without a playlist
}

// ExportJob is one scope queued for export. A nil Playlist is the unfiled bucket.
type ExportJob struct {
	Playlist *models.Playlist
}

func (j ExportJob) scope() string {
	if j.Playlist == nil {
		return ""
	}
	return j.Playlist.ID
}

func (j ExportJob) title() string {
	if j.Playlist == nil || j.Playlist.Title == "" {
		return models.UnfiledTitle
	}
	return j.Playlist.Title
}

// PlaylistExportResult is the outcome of exporting one scope.
type PlaylistExportResult struct {
	PlaylistID string `json:"playlist_id"`
	Title      string `json:"title"`
	Items      int    `json:"items"`
	File       string `json:"file,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Success reports whether the export wrote a file.
func (r PlaylistExportResult) Success() bool {
	return r.Error == ""
}

// ExportResult summarizes a bulk export and doubles as the manifest written alongside the files.
type ExportResult struct {
	Format            formatter.Format       `json:"format"`
	OutputDirectory   string                 `json:"output_directory"`
	TotalPlaylists    int                    `json:"total_playlists"`
	SuccessfulExports int                    `json:"successful_exports"`
	FailedExports     int                    `json:"failed_exports"`
	Results           []PlaylistExportResult `json:"results"`
	ManifestPath      string                 `json:"-"`
}

// Export writes each playlist's items to opts.OutputDir using a pool of workers.
//
// List requests are rate limited and a failed playlist never aborts the run. A manifest named
// export_manifest.json is written once all workers finish.
func (e *Engine) Export(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	lister ItemLister,
	playlists []models.Playlist,
	opts ExportOpts,
) (*ExportResult, error) {
	if lister == nil {
		return nil, fmt.Errorf("%w: item source not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Format == "" || opts.Format == formatter.FormatTable {
		opts.Format = formatter.FormatJSON
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("plx_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	queue := make([]ExportJob, 0, len(playlists)+1)
	for i := range playlists {
		queue = append(queue, ExportJob{Playlist: &playlists[i]})
	}
	if opts.IncludeUnfiled {
		queue = append(queue, ExportJob{})
	}

	total := len(queue)
	result := &ExportResult{
		Format:          opts.Format,
		OutputDirectory: opts.OutputDir,
		TotalPlaylists:  total,
		Results:         make([]PlaylistExportResult, 0, total),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan ExportJob, total)
	results := make(chan PlaylistExportResult, total)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, limiter, lister, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, job := range queue {
			select {
			case <-ctx.Done():
				return
			case jobs <- job:
				e.sendProgress(prog, fetchItemsUpdate(i+1, total, job.title()))
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success() {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, total, res.Title, res.File))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, total, res.Title, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	e.sendProgress(prog, manifestUpdate(manifestPath))
	e.logger.Info("export finished", "dir", opts.OutputDir, "ok", result.SuccessfulExports, "failed", result.FailedExports)
	return result, nil
}

// exportWorker is a worker goroutine that exports scopes from the jobs channel.
func (e *Engine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	lister ItemLister,
	jobs <-chan ExportJob,
	results chan<- PlaylistExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		results <- e.exportOne(ctx, limiter, lister, job, opts)
	}
}

// exportOne fetches and writes a single scope.
func (e *Engine) exportOne(
	ctx context.Context,
	limiter *rate.Limiter,
	lister ItemLister,
	job ExportJob,
	opts ExportOpts,
) PlaylistExportResult {
	res := PlaylistExportResult{PlaylistID: job.scope(), Title: job.title()}

	if err := limiter.Wait(ctx); err != nil {
		res.Error = err.Error()
		return res
	}

	list, err := lister.List(ctx, job.scope())
	if err != nil {
		res.Error = fmt.Sprintf("failed to fetch items: %v", err)
		return res
	}
	if list.Playlist == nil && job.Playlist != nil {
		list.Playlist = job.Playlist
	}
	res.Title = list.Title()
	res.Items = len(list.Items)

	path, err := formatter.WriteExport(list, opts.Format, opts.OutputDir)
	if err != nil {
		res.Error = fmt.Sprintf("%s export failed: %v", opts.Format, err)
		return res
	}
	res.File = path
	return res
}
