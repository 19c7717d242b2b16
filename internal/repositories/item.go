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

// ItemRepository persists [models.Item] rows.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository with the given database connection
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts an item under playlistID, or unfiled when playlistID is empty.
// The title defaults to the URL.
func (r *ItemRepository) Create(playlistID, url, title string) (models.Item, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return models.Item{}, fmt.Errorf("%w: url is required", shared.ErrValidation)
	}
	if strings.TrimSpace(title) == "" {
		title = url
	}

	sequence, err := NextSequence(r.db, "items")
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	item := models.Item{ID: shared.GenerateID(), PlaylistID: playlistID, URL: url, Title: title}

	query := `
		INSERT INTO items (id, sequence, playlist_id, url, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, item.ID, sequence, nullable(playlistID), item.URL, item.Title, now, now)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint") {
			return models.Item{}, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
		}
		return models.Item{}, fmt.Errorf("failed to insert item: %w", err)
	}

	return item, nil
}

// Get retrieves an item by ID
func (r *ItemRepository) Get(id string) (models.Item, error) {
	query := `SELECT id, playlist_id, url, title FROM items WHERE id = ?`

	item, err := scanItem(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, fmt.Errorf("%w: %s", shared.ErrItemNotFound, id)
	}
	return item, err
}

// Update sets the non-empty fields of url and title and returns the stored row
func (r *ItemRepository) Update(id, url, title string) (models.Item, error) {
	item, err := r.Get(id)
	if err != nil {
		return models.Item{}, err
	}

	if u := strings.TrimSpace(url); u != "" {
		if item.Title == item.URL && strings.TrimSpace(title) == "" {
			item.Title = u
		}
		item.URL = u
	}
	if t := strings.TrimSpace(title); t != "" {
		item.Title = t
	}

	result, err := r.db.Exec(
		`UPDATE items SET url = ?, title = ?, updated_at = ? WHERE id = ?`,
		item.URL, item.Title, time.Now(), id,
	)
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to update item: %w", err)
	}
	if err := affected(result, shared.ErrItemNotFound, id); err != nil {
		return models.Item{}, err
	}

	return item, nil
}

// Delete removes an item by ID
func (r *ItemRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return affected(result, shared.ErrItemNotFound, id)
}

// List retrieves the items of playlistID in creation order. An empty playlistID lists unfiled items.
func (r *ItemRepository) List(playlistID string) ([]models.Item, error) {
	query := `SELECT id, playlist_id, url, title FROM items`
	args := []any{}

	if playlistID == "" {
		query += " WHERE playlist_id IS NULL"
	} else {
		query += " WHERE playlist_id = ?"
		args = append(args, playlistID)
	}
	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

func scanItem(row scanner) (models.Item, error) {
	var (
		item       models.Item
		playlistID sql.NullString
	)
	if err := row.Scan(&item.ID, &playlistID, &item.URL, &item.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item, err
		}
		return item, fmt.Errorf("failed to scan item: %w", err)
	}
	item.PlaylistID = playlistID.String
	return item, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
