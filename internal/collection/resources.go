package collection

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/services"
	"github.com/desertthunder/plx/internal/shared"
)

// Page is one list response: the entities and, for items, the parent playlist.
type Page[T models.Entity] struct {
	Entities []T
	Parent   *models.Playlist
}

// Resource is the CRUD contract a [Controller] drives. An empty scope means "unscoped".
type Resource[T models.Entity] interface {
	List(ctx context.Context, scope string) (Page[T], error)
	Create(ctx context.Context, scope string, payload models.Payload) (T, error)
	Update(ctx context.Context, id string, payload models.Payload) (T, error)
	Delete(ctx context.Context, id string) error
}

type playlistResource struct {
	client *services.PlaylistsClient
}

// Playlists adapts c to a [Resource]. Playlists have no scope.
func Playlists(c *services.PlaylistsClient) Resource[models.Playlist] {
	return &playlistResource{client: c}
}

func (r *playlistResource) List(ctx context.Context, _ string) (Page[models.Playlist], error) {
	playlists, err := r.client.List(ctx)
	if err != nil {
		return Page[models.Playlist]{}, err
	}
	return Page[models.Playlist]{Entities: playlists}, nil
}

func (r *playlistResource) Create(ctx context.Context, _ string, payload models.Payload) (models.Playlist, error) {
	return r.client.Create(ctx, payload)
}

func (r *playlistResource) Update(ctx context.Context, id string, payload models.Payload) (models.Playlist, error) {
	return r.client.Update(ctx, id, payload)
}

func (r *playlistResource) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, id)
}

type itemResource struct {
	client *services.ItemsClient
}

// Items adapts c to a [Resource] scoped by playlist id.
func Items(c *services.ItemsClient) Resource[models.Item] {
	return &itemResource{client: c}
}

func (r *itemResource) List(ctx context.Context, scope string) (Page[models.Item], error) {
	list, err := r.client.List(ctx, scope)
	if err != nil {
		return Page[models.Item]{}, err
	}
	return Page[models.Item]{Entities: list.Items, Parent: list.Playlist}, nil
}

func (r *itemResource) Create(ctx context.Context, scope string, payload models.Payload) (models.Item, error) {
	return r.client.Create(ctx, scope, payload)
}

func (r *itemResource) Update(ctx context.Context, id string, payload models.Payload) (models.Item, error) {
	return r.client.Update(ctx, id, payload)
}

func (r *itemResource) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, id)
}

// securityResource presents the settings object as one row per key.
//
// The backend replaces the whole object on PUT, so the last known settings are kept to build
// the full body when a single row changes.
type securityResource struct {
	client *services.SecurityClient

	mu      sync.Mutex
	current *models.SecuritySettings
}

// Security adapts c to a [Resource] of [models.SettingField] rows. Rows cannot be created or deleted.
func Security(c *services.SecurityClient) Resource[models.SettingField] {
	return &securityResource{client: c}
}

func (r *securityResource) remember(s models.SecuritySettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = &s
}

func (r *securityResource) List(ctx context.Context, _ string) (Page[models.SettingField], error) {
	settings, err := r.client.Get(ctx)
	if err != nil {
		return Page[models.SettingField]{}, err
	}
	r.remember(settings)
	return Page[models.SettingField]{Entities: settings.Fields()}, nil
}

func (r *securityResource) Create(context.Context, string, models.Payload) (models.SettingField, error) {
	return models.SettingField{}, fmt.Errorf("%w: security settings cannot be created", shared.ErrNotImplemented)
}

func (r *securityResource) Update(ctx context.Context, key string, payload models.Payload) (models.SettingField, error) {
	r.mu.Lock()
	current := r.current
	r.mu.Unlock()

	var base models.SecuritySettings
	if current != nil {
		base = *current
	} else {
		fetched, err := r.client.Get(ctx)
		if err != nil {
			return models.SettingField{}, err
		}
		base = fetched
	}

	next, ok := base.With(key, payload[FieldValue])
	if !ok {
		return models.SettingField{}, fmt.Errorf("%w: unknown setting %q", shared.ErrInvalidArgument, key)
	}

	saved, err := r.client.Update(ctx, next)
	if err != nil {
		return models.SettingField{}, err
	}
	r.remember(saved)

	value, _ := saved.Get(key)
	return models.SettingField{Key: key, Value: value}, nil
}

func (r *securityResource) Delete(context.Context, string) error {
	return fmt.Errorf("%w: security settings cannot be deleted", shared.ErrNotImplemented)
}
