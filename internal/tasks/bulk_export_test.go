package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/desertthunder/plx/internal/formatter"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
	tu "github.com/desertthunder/plx/internal/testing"
)

// fakeLister serves item lists by scope id and records the scopes requested.
type fakeLister struct {
	mu     sync.Mutex
	lists  map[string]models.ItemList
	fail   map[string]bool
	scopes []string
}

func (f *fakeLister) List(_ context.Context, scopeID string) (models.ItemList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scopes = append(f.scopes, scopeID)
	if f.fail[scopeID] {
		return models.ItemList{}, fmt.Errorf("%w: status 500", shared.ErrServer)
	}
	return f.lists[scopeID], nil
}

func newFakeLister() *fakeLister {
	return &fakeLister{
		lists: map[string]models.ItemList{
			"p1": {
				Playlist: &models.Playlist{ID: "p1", Title: "Road Trip"},
				Items:    []models.Item{{ID: "i1", PlaylistID: "p1", URL: "https://a.example/1", Title: "One"}},
			},
			"p2": {
				Playlist: &models.Playlist{ID: "p2", Title: "Focus"},
				Items:    []models.Item{},
			},
			"": {
				Items: []models.Item{{ID: "i2", URL: "https://a.example/2", Title: "Two"}},
			},
		},
		fail: map[string]bool{},
	}
}

var playlists = []models.Playlist{{ID: "p1", Title: "Road Trip"}, {ID: "p2", Title: "Focus"}}

func TestExport(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		format      formatter.Format
		unfiled     bool
		wantSuccess int
		wantFiles   []string
	}{
		{"JSON", formatter.FormatJSON, false, 2, []string{"road-trip_p1.json", "focus_p2.json"}},
		{"CSV With Unfiled", formatter.FormatCSV, true, 3, []string{"road-trip_p1.csv", "focus_p2.csv", "added.csv"}},
		{"YAML", formatter.FormatYAML, false, 2, []string{"road-trip_p1.yaml", "focus_p2.yaml"}},
		{"Table Falls Back To JSON", formatter.FormatTable, false, 2, []string{"road-trip_p1.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			lister := newFakeLister()

			result, err := NewEngine(nil).Export(ctx, nil, lister, playlists, ExportOpts{
				Format:         tt.format,
				OutputDir:      dir,
				NumWorkers:     2,
				RateLimit:      1000,
				IncludeUnfiled: tt.unfiled,
			})
			if err != nil {
				t.Fatalf("Export failed: %v", err)
			}
			if result.SuccessfulExports != tt.wantSuccess || result.FailedExports != 0 {
				t.Errorf("expected %d successes, got %+v", tt.wantSuccess, result)
			}
			for _, name := range tt.wantFiles {
				tu.AssertFileExists(t, filepath.Join(dir, name))
			}
			tu.AssertFileExists(t, result.ManifestPath)
		})
	}
}

func TestExportPartialFailure(t *testing.T) {
	dir := t.TempDir()
	lister := newFakeLister()
	lister.fail["p2"] = true
	prog := make(chan ProgressUpdate, 20)

	result, err := NewEngine(nil).Export(context.Background(), prog, lister, playlists, ExportOpts{
		Format:    formatter.FormatMarkdown,
		OutputDir: dir,
		RateLimit: 1000,
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.SuccessfulExports != 1 || result.FailedExports != 1 {
		t.Fatalf("expected 1 success and 1 failure, got %+v", result)
	}

	sort.Strings(lister.scopes)
	if len(lister.scopes) != 2 || lister.scopes[0] != "p1" || lister.scopes[1] != "p2" {
		t.Errorf("unexpected scopes fetched: %v", lister.scopes)
	}

	var manifest ExportResult
	if err := json.Unmarshal([]byte(tu.MustReadFile(t, result.ManifestPath)), &manifest); err != nil {
		t.Fatalf("invalid manifest: %v", err)
	}
	if manifest.FailedExports != 1 || len(manifest.Results) != 2 || manifest.Format != formatter.FormatMarkdown {
		t.Errorf("unexpected manifest: %+v", manifest)
	}
	for _, r := range manifest.Results {
		if r.PlaylistID == "p2" && r.Error == "" {
			t.Error("expected failure to be recorded in manifest")
		}
		if r.PlaylistID == "p1" && (r.Items != 1 || r.File == "") {
			t.Errorf("unexpected success entry: %+v", r)
		}
	}

	close(prog)
	sawManifest := false
	for u := range prog {
		if u.Phase == WriteManifest {
			sawManifest = true
		}
	}
	if !sawManifest {
		t.Error("expected manifest progress update")
	}
}

func TestExportEdgeCases(t *testing.T) {
	t.Run("NilLister", func(t *testing.T) {
		if _, err := NewEngine(nil).Export(context.Background(), nil, nil, playlists, ExportOpts{}); err == nil {
			t.Error("expected error for nil lister")
		}
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		dir := t.TempDir()

		_, err := NewEngine(nil).Export(ctx, nil, newFakeLister(), playlists, ExportOpts{OutputDir: dir, RateLimit: 1000})
		if err == nil {
			t.Fatal("expected context error")
		}
		if _, statErr := os.Stat(filepath.Join(dir, "export_manifest.json")); !os.IsNotExist(statErr) {
			t.Error("expected no manifest for a canceled export")
		}
	})

	t.Run("Unwritable Output", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		tu.MustWriteFile(t, file, "x")

		if _, err := NewEngine(nil).Export(context.Background(), nil, newFakeLister(), playlists, ExportOpts{OutputDir: filepath.Join(file, "out")}); err == nil {
			t.Error("expected directory creation error")
		}
	})
}
