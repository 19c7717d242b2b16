package collection

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/plx/internal/models"
)

// memoryPlaylists is an in-memory playlists backend that assigns sequential ids.
type memoryPlaylists struct {
	mu      sync.Mutex
	next    int
	byScope map[string][]models.Playlist

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	// hooks run while the call is "in flight", before it settles
	onList   func(scope string)
	onCreate func(scope string)
	onDelete func(id string)

	creates int
	deletes int
	updates int
}

func newMemoryPlaylists(initial ...models.Playlist) *memoryPlaylists {
	return &memoryPlaylists{next: len(initial) + 1, byScope: map[string][]models.Playlist{"": initial}}
}

func (m *memoryPlaylists) List(ctx context.Context, scope string) (Page[models.Playlist], error) {
	if m.onList != nil {
		m.onList(scope)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return Page[models.Playlist]{}, m.listErr
	}
	return Page[models.Playlist]{Entities: append([]models.Playlist(nil), m.byScope[scope]...)}, nil
}

func (m *memoryPlaylists) Create(ctx context.Context, scope string, payload models.Payload) (models.Playlist, error) {
	if m.onCreate != nil {
		m.onCreate(scope)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.createErr != nil {
		return models.Playlist{}, m.createErr
	}
	p := models.Playlist{ID: fmt.Sprint(m.next), Title: payload[FieldTitle]}
	m.next++
	m.byScope[scope] = append(m.byScope[scope], p)
	return p, nil
}

func (m *memoryPlaylists) Update(ctx context.Context, id string, payload models.Payload) (models.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	if m.updateErr != nil {
		return models.Playlist{}, m.updateErr
	}
	return models.Playlist{ID: id, Title: payload[FieldTitle]}, nil
}

func (m *memoryPlaylists) Delete(ctx context.Context, id string) error {
	if m.onDelete != nil {
		m.onDelete(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	return m.deleteErr
}

func ids[T models.Entity](entities []T) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.EntityID()
	}
	return out
}

func assertUniqueIDs[T models.Entity](entities []T) error {
	seen := map[string]bool{}
	for _, e := range entities {
		if seen[e.EntityID()] {
			return fmt.Errorf("duplicate id %q in %v", e.EntityID(), ids(entities))
		}
		seen[e.EntityID()] = true
	}
	return nil
}
