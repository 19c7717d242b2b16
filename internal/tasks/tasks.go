package tasks

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plx/internal/collection"
	"github.com/desertthunder/plx/internal/metrics"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
	"golang.org/x/time/rate"
)

// ItemCreator creates items from a submitted form. [collection.Controller] implements it for [models.Item].
type ItemCreator interface {
	HandleCreate(ctx context.Context, form *collection.Form) (models.Item, error)
}

// ItemLister fetches one scope of items. [services.ItemsClient] implements it.
type ItemLister interface {
	List(ctx context.Context, scopeID string) (models.ItemList, error)
}

// ImportLine is one URL read from an import file, with its 1-based line number.
type ImportLine struct {
	Line int
	URL  string
}

// LineError records why a single import line was not created.
type LineError struct {
	Line int
	URL  string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.URL, e.Err)
}

func (e LineError) Unwrap() error {
	return e.Err
}

// ImportOpts configures [Engine.Import].
type ImportOpts struct {
	RateLimit float64 // Creates per second (default: 2)
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Total   int           // Lines considered
	Created []models.Item // Items returned by the backend, in input order
	Skipped int           // Duplicate URLs
	Errors  []LineError   // Lines that failed validation or creation
}

// Failed returns the number of lines that could not be created.
func (r *ImportResult) Failed() int {
	return len(r.Errors)
}

// Engine runs bulk operations.
type Engine struct {
	logger *log.Logger
}

// NewEngine creates an [Engine]. A nil logger discards output.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ReadURLs reads one URL per line. Surrounding whitespace is trimmed; blank lines and lines starting with # are
// skipped.
func ReadURLs(r io.Reader) ([]ImportLine, error) {
	var lines []ImportLine
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, ImportLine{Line: n, URL: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read import input: %w", err)
	}
	return lines, nil
}

// ValidateURL reports whether s is an absolute http(s) URL.
func ValidateURL(s string) error {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", shared.ErrValidation, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", shared.ErrValidation)
	}
	return nil
}

// Import creates one item per line through dest, one at a time, at most opts.RateLimit per second.
//
// Line failures are collected and do not stop the run. Context cancellation stops the run and returns the partial
// result along with the context error.
func (e *Engine) Import(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	dest ItemCreator,
	lines []ImportLine,
	opts ImportOpts,
) (*ImportResult, error) {
	if dest == nil {
		return nil, fmt.Errorf("%w: item destination not initialized", shared.ErrServiceUnavailable)
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	metrics.ImportRunning.Set(1)
	defer metrics.ImportRunning.Set(0)

	total := len(lines)
	result := &ImportResult{Total: total, Created: make([]models.Item, 0, total)}
	e.sendProgress(prog, readInputUpdate(total))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	form := collection.NewItemForm()
	seen := make(map[string]bool, total)

	for i, line := range lines {
		step := i + 1

		if err := ctx.Err(); err != nil {
			return result, err
		}

		if seen[line.URL] {
			result.Skipped++
			metrics.ImportItemsTotal.WithLabelValues("skipped").Inc()
			e.sendProgress(prog, importSkippedUpdate(step, total, line.URL))
			continue
		}
		seen[line.URL] = true

		if err := ValidateURL(line.URL); err != nil {
			e.fail(prog, result, line, step, total, err)
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}

		if err := form.Set(collection.FieldURL, line.URL); err != nil {
			return result, err
		}
		item, err := dest.HandleCreate(ctx, form)
		if err != nil {
			e.fail(prog, result, line, step, total, err)
			continue
		}

		result.Created = append(result.Created, item)
		metrics.ImportItemsTotal.WithLabelValues("created").Inc()
		e.sendProgress(prog, importCreatedUpdate(step, total, item))
	}

	e.logger.Info("import finished", "total", total, "created", len(result.Created), "skipped", result.Skipped, "failed", result.Failed())
	return result, nil
}

func (e *Engine) fail(prog chan<- ProgressUpdate, result *ImportResult, line ImportLine, step, total int, err error) {
	result.Errors = append(result.Errors, LineError{Line: line.Line, URL: line.URL, Err: err})
	metrics.ImportItemsTotal.WithLabelValues("failed").Inc()
	e.logger.Warn("import line failed", "line", line.Line, "url", line.URL, "err", err)
	e.sendProgress(prog, importFailedUpdate(step, total, line.URL, err))
}
