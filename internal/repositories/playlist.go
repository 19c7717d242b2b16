package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// PlaylistRepository persists [models.Playlist] rows.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist with a generated ID and sequence
func (r *PlaylistRepository) Create(title string) (models.Playlist, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Playlist{}, fmt.Errorf("%w: title is required", shared.ErrValidation)
	}

	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return models.Playlist{}, fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	playlist := models.Playlist{ID: shared.GenerateID(), Title: title}

	query := `
		INSERT INTO playlists (id, sequence, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, playlist.ID, sequence, playlist.Title, now, now); err != nil {
		return models.Playlist{}, fmt.Errorf("failed to insert playlist: %w", err)
	}

	return playlist, nil
}

// Get retrieves a playlist by ID
func (r *PlaylistRepository) Get(id string) (models.Playlist, error) {
	query := `SELECT id, title FROM playlists WHERE id = ?`

	playlist, err := scanPlaylist(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Playlist{}, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	return playlist, err
}

// Update renames the playlist and returns the stored row
func (r *PlaylistRepository) Update(id, title string) (models.Playlist, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Playlist{}, fmt.Errorf("%w: title is required", shared.ErrValidation)
	}

	result, err := r.db.Exec(`UPDATE playlists SET title = ?, updated_at = ? WHERE id = ?`, title, time.Now(), id)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("failed to update playlist: %w", err)
	}
	if err := affected(result, shared.ErrPlaylistNotFound, id); err != nil {
		return models.Playlist{}, err
	}

	return r.Get(id)
}

// Delete removes a playlist. Its items are removed by the foreign key cascade.
func (r *PlaylistRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM playlists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return affected(result, shared.ErrPlaylistNotFound, id)
}

// List retrieves all playlists in creation order
func (r *PlaylistRepository) List() ([]models.Playlist, error) {
	rows, err := r.db.Query(`SELECT id, title FROM playlists ORDER BY sequence ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []models.Playlist{}
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

func scanPlaylist(row scanner) (models.Playlist, error) {
	var p models.Playlist
	if err := row.Scan(&p.ID, &p.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("failed to scan playlist: %w", err)
	}
	return p, nil
}
