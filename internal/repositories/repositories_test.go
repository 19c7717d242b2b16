package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	first, err := NextSequence(db, "playlists")
	if err != nil {
		t.Fatalf("NextSequence failed: %v", err)
	}
	second, _ := NextSequence(db, "playlists")
	if second != first+1 {
		t.Errorf("expected %d, got %d", first+1, second)
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestPlaylistRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))

		playlist, err := repo.Create("  Road Trip ")
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}
		if playlist.ID == "" {
			t.Error("playlist ID should be set after creation")
		}
		if playlist.Title != "Road Trip" {
			t.Errorf("expected trimmed title, got %q", playlist.Title)
		}
	})

	t.Run("Create Requires Title", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))

		if _, err := repo.Create(" "); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("Get", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))
		created, _ := repo.Create("Mix")

		retrieved, err := repo.Get(created.ID)
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if retrieved != created {
			t.Errorf("expected %+v, got %+v", created, retrieved)
		}

		if _, err := repo.Get("nonexistent-id"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))
		created, _ := repo.Create("Mix")

		updated, err := repo.Update(created.ID, "Mix 2")
		if err != nil {
			t.Fatalf("failed to update playlist: %v", err)
		}
		if updated.ID != created.ID || updated.Title != "Mix 2" {
			t.Errorf("unexpected update result: %+v", updated)
		}

		if _, err := repo.Update("nonexistent-id", "x"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("Delete Cascades To Items", func(t *testing.T) {
		db := setupTestDB(t)
		playlists := NewPlaylistRepository(db)
		items := NewItemRepository(db)

		p, _ := playlists.Create("Mix")
		if _, err := items.Create(p.ID, "https://example.com/a", ""); err != nil {
			t.Fatalf("failed to create item: %v", err)
		}

		if err := playlists.Delete(p.ID); err != nil {
			t.Fatalf("failed to delete playlist: %v", err)
		}

		remaining, err := items.List(p.ID)
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("expected items to be removed with their playlist, got %v", remaining)
		}

		if err := playlists.Delete(p.ID); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound on second delete, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))

		empty, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if empty == nil || len(empty) != 0 {
			t.Errorf("expected empty non-nil list, got %#v", empty)
		}

		for _, title := range []string{"a", "b", "c"} {
			repo.Create(title)
		}

		playlists, _ := repo.List()
		if len(playlists) != 3 {
			t.Fatalf("expected 3 playlists, got %d", len(playlists))
		}
		for i, title := range []string{"a", "b", "c"} {
			if playlists[i].Title != title {
				t.Errorf("expected creation order, got %v", playlists)
				break
			}
		}
	})
}

func TestItemRepository(t *testing.T) {
	t.Run("Create Defaults Title To URL", func(t *testing.T) {
		repo := NewItemRepository(setupTestDB(t))

		item, err := repo.Create("", "https://example.com/v", "")
		if err != nil {
			t.Fatalf("failed to create item: %v", err)
		}
		if item.Title != item.URL {
			t.Errorf("expected title to default to URL, got %q", item.Title)
		}
		if item.PlaylistID != "" {
			t.Errorf("expected unfiled item, got playlist %q", item.PlaylistID)
		}
	})

	t.Run("Create Requires URL", func(t *testing.T) {
		repo := NewItemRepository(setupTestDB(t))

		if _, err := repo.Create("", "", "title"); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("Create Under Unknown Playlist", func(t *testing.T) {
		repo := NewItemRepository(setupTestDB(t))

		if _, err := repo.Create("nope", "https://example.com", ""); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("List Separates Scopes", func(t *testing.T) {
		db := setupTestDB(t)
		playlists := NewPlaylistRepository(db)
		repo := NewItemRepository(db)

		p, _ := playlists.Create("Mix")
		repo.Create(p.ID, "https://example.com/1", "")
		repo.Create("", "https://example.com/2", "")
		repo.Create(p.ID, "https://example.com/3", "")

		scoped, err := repo.List(p.ID)
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if len(scoped) != 2 || scoped[0].URL != "https://example.com/1" || scoped[1].URL != "https://example.com/3" {
			t.Errorf("unexpected scoped items: %v", scoped)
		}

		unfiled, _ := repo.List("")
		if len(unfiled) != 1 || unfiled[0].URL != "https://example.com/2" {
			t.Errorf("unexpected unfiled items: %v", unfiled)
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewItemRepository(setupTestDB(t))
		item, _ := repo.Create("", "https://example.com/old", "")

		updated, err := repo.Update(item.ID, "https://example.com/new", "")
		if err != nil {
			t.Fatalf("failed to update item: %v", err)
		}
		if updated.URL != "https://example.com/new" || updated.Title != "https://example.com/new" {
			t.Errorf("expected url and defaulted title to follow, got %+v", updated)
		}

		titled, _ := repo.Update(item.ID, "", "Named")
		if titled.Title != "Named" || titled.URL != "https://example.com/new" {
			t.Errorf("expected only title to change, got %+v", titled)
		}

		stored, _ := repo.Get(item.ID)
		if stored != titled {
			t.Errorf("expected stored %+v, got %+v", titled, stored)
		}

		if _, err := repo.Update("missing", "u", ""); !errors.Is(err, shared.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewItemRepository(setupTestDB(t))
		item, _ := repo.Create("", "https://example.com", "")

		if err := repo.Delete(item.ID); err != nil {
			t.Fatalf("failed to delete item: %v", err)
		}
		if _, err := repo.Get(item.ID); !errors.Is(err, shared.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
		if err := repo.Delete(item.ID); !errors.Is(err, shared.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestSettingsRepository(t *testing.T) {
	t.Run("Empty By Default", func(t *testing.T) {
		repo := NewSettingsRepository(setupTestDB(t))

		settings, err := repo.Get()
		if err != nil {
			t.Fatalf("failed to get settings: %v", err)
		}
		if settings != (models.SecuritySettings{}) {
			t.Errorf("expected empty settings, got %+v", settings)
		}
	})

	t.Run("Save Replaces Every Key", func(t *testing.T) {
		repo := NewSettingsRepository(setupTestDB(t))

		first := models.SecuritySettings{YouTubeAPIKey: "k", YouTubeClientID: "c", YouTubeSecretKey: "s"}
		if err := repo.Save(first); err != nil {
			t.Fatalf("failed to save settings: %v", err)
		}

		second := models.SecuritySettings{YouTubeAPIKey: "k2"}
		if err := repo.Save(second); err != nil {
			t.Fatalf("failed to save settings: %v", err)
		}

		got, _ := repo.Get()
		if got != second {
			t.Errorf("expected %+v, got %+v", second, got)
		}
	})
}
