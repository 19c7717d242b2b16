package server_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plx/internal/collection"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/server"
	"github.com/desertthunder/plx/internal/services"
	"github.com/desertthunder/plx/internal/shared"
)

func backend(t *testing.T, securityPage bool) *services.APIService {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	if _, err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	srv := server.New(shared.ServerConfig{SecurityPage: securityPage}, db, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		db.Close()
	})
	return services.NewAPIService(ts.URL, ts.Client())
}

// TestControllersAgainstBackend drives the collection controllers through the HTTP client
// against a real backend.
func TestControllersAgainstBackend(t *testing.T) {
	ctx := context.Background()
	api := backend(t, false)

	playlists := collection.NewController(collection.Playlists(services.NewPlaylistsClient(api)), collection.FieldTitle, nil)
	if err := playlists.Mount(ctx, ""); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}

	form := collection.NewPlaylistForm()
	for _, title := range []string{"A", "B", "C"} {
		form.Set(collection.FieldTitle, title)
		if _, err := playlists.HandleCreate(ctx, form); err != nil {
			t.Fatalf("HandleCreate failed: %v", err)
		}
	}

	got := playlists.Entities()
	if len(got) != 3 || got[0].Title != "C" || got[2].Title != "A" {
		t.Fatalf("expected newest first, got %v", got)
	}

	if _, err := playlists.HandleEdit(ctx, got[1], "B2"); err != nil {
		t.Fatalf("HandleEdit failed: %v", err)
	}
	if p := playlists.Entities()[1]; p.Title != "B2" || p.ID != got[1].ID {
		t.Errorf("expected B2 in place, got %+v", p)
	}

	items := collection.NewController(collection.Items(services.NewItemsClient(api)), collection.FieldURL, nil)
	if err := items.Mount(ctx, got[0].ID); err != nil {
		t.Fatalf("Mount items failed: %v", err)
	}
	if items.Title() != "C" {
		t.Errorf("expected parent title C, got %q", items.Title())
	}

	itemForm := collection.NewItemForm()
	itemForm.Set(collection.FieldURL, "https://example.com/v")
	item, err := items.HandleCreate(ctx, itemForm)
	if err != nil {
		t.Fatalf("HandleCreate item failed: %v", err)
	}
	if item.PlaylistID != got[0].ID {
		t.Errorf("expected item in scope, got %+v", item)
	}

	if err := items.SetScope(ctx, ""); err != nil {
		t.Fatalf("SetScope failed: %v", err)
	}
	if items.Len() != 0 || items.Title() != models.UnfiledTitle {
		t.Errorf("expected empty unfiled bucket, got %d items titled %q", items.Len(), items.Title())
	}

	if _, err := playlists.HandleDelete(ctx, got[0]); err != nil {
		t.Fatalf("HandleDelete failed: %v", err)
	}
	if playlists.Len() != 2 || playlists.Index(got[0].ID) != -1 {
		t.Errorf("expected playlist removed, got %v", playlists.Entities())
	}

	err = items.SetScope(ctx, got[0].ID)
	var se *shared.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for deleted playlist, got %v", err)
	}
}

func TestSecurityAgainstBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("Forbidden When Disabled", func(t *testing.T) {
		c := collection.NewController(collection.Security(services.NewSecurityClient(backend(t, false))), collection.FieldValue, nil)

		err := c.Mount(ctx, "")
		var se *shared.StatusError
		if !errors.As(err, &se) || se.StatusCode != http.StatusForbidden {
			t.Errorf("expected 403, got %v", err)
		}
		if c.State() != collection.Idle {
			t.Errorf("expected Idle after failed fetch, got %v", c.State())
		}
	})

	t.Run("Edit Row", func(t *testing.T) {
		c := collection.NewController(collection.Security(services.NewSecurityClient(backend(t, true))), collection.FieldValue, nil)
		if err := c.Mount(ctx, ""); err != nil {
			t.Fatalf("Mount failed: %v", err)
		}

		row, _ := c.Get("youtube_apikey")
		it := collection.NewEditableItem(row, row.Value, c.HandleEdit, nil, nil)
		it.BeginEdit()
		it.SetDraft("secret")
		if err := it.Submit(ctx); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		if err := c.FetchAll(ctx, ""); err != nil {
			t.Fatalf("FetchAll failed: %v", err)
		}
		if saved, _ := c.Get("youtube_apikey"); saved.Value != "secret" {
			t.Errorf("expected saved value, got %+v", saved)
		}
	})
}
