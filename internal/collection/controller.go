package collection

import (
	"context"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plx/internal/models"
)

// State is the lifecycle of a [Controller].
type State int

const (
	Idle State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "idle"
	}
}

// Controller owns the ordered collection of one view and applies server responses to it.
//
// All methods are safe for concurrent use; backend calls are made without holding the lock.
type Controller[T models.Entity] struct {
	resource Resource[T]
	field    string
	logger   *log.Logger

	// Confirm, when set, guards [Controller.HandleDelete]. Returning false cancels the delete.
	Confirm func(T) bool

	mu         sync.Mutex
	state      State
	scope      string
	parent     *models.Playlist
	entities   []T
	generation uint64
	session    uint64 // bumped whenever the collection stops belonging to the current scope
	mounted    bool
}

// NewController creates a controller over resource. field names the payload key sent by
// [Controller.HandleEdit].
func NewController[T models.Entity](resource Resource[T], field string, logger *log.Logger) *Controller[T] {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller[T]{resource: resource, field: field, logger: logger}
}

// Mount attaches the controller to a view and fetches the collection for scope.
func (c *Controller[T]) Mount(ctx context.Context, scope string) error {
	c.Attach()
	return c.FetchAll(ctx, scope)
}

// Attach marks the controller as shown without fetching. Event loops attach synchronously and run
// [Controller.FetchAll] in the background, so an [Controller.Unmount] in between drops the fetch.
func (c *Controller[T]) Attach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mounted = true
}

// Unmount discards the collection. Calls still in flight settle into an inert controller.
func (c *Controller[T]) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mounted = false
	c.generation++
	c.session++
	c.entities = nil
	c.parent = nil
	c.state = Idle
}

// FetchAll lists scope and replaces the collection and parent in one step.
//
// On failure a refresh of the current scope restores the previous state and collection. A
// failed fetch of a new scope keeps that scope and leaves the collection empty and Idle. The
// result of a fetch superseded by a newer one, or finishing after Unmount, is dropped. An
// unmounted controller does not fetch at all.
func (c *Controller[T]) FetchAll(ctx context.Context, scope string) error {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		c.logger.Debug("skipping fetch for unmounted controller", "scope", scope)
		return nil
	}
	c.generation++
	gen := c.generation
	prevState, prevScope := c.state, c.scope
	if scope != prevScope {
		c.session++
	}
	c.state = Loading
	c.scope = scope
	c.mu.Unlock()

	page, err := c.resource.List(ctx, scope)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mounted || gen != c.generation {
		c.logger.Debug("dropping superseded fetch", "scope", scope)
		return nil
	}

	if err != nil {
		if scope == prevScope {
			c.state = prevState
		} else {
			c.entities = nil
			c.parent = nil
			c.state = Idle
		}
		c.logger.Error("fetch failed", "scope", scope, "err", err)
		return err
	}

	entities := make([]T, 0, len(page.Entities))
	for _, e := range page.Entities {
		if c.indexIn(entities, e.EntityID()) >= 0 {
			c.logger.Warn("duplicate id in list response", "id", e.EntityID())
			continue
		}
		entities = append(entities, e)
	}

	c.entities = entities
	c.parent = page.Parent
	c.state = Ready
	c.logger.Debug("fetched collection", "scope", scope, "count", len(entities))
	return nil
}

// SetScope discards the collection and fetches scope when it differs from the current one.
func (c *Controller[T]) SetScope(ctx context.Context, scope string) error {
	c.mu.Lock()
	if scope == c.scope && c.state != Idle {
		c.mu.Unlock()
		return nil
	}
	c.entities = nil
	c.parent = nil
	c.state = Idle
	c.scope = scope
	c.session++
	c.mu.Unlock()

	return c.FetchAll(ctx, scope)
}

// HandleCreate submits form, creates the entity in the current scope, and prepends the
// server's entity. The form is reset only on success. The entity is not prepended when the
// controller was unmounted or moved to another scope while the call was in flight.
func (c *Controller[T]) HandleCreate(ctx context.Context, form *Form) (T, error) {
	var zero T

	payload, err := form.Submit()
	if err != nil {
		return zero, err
	}

	c.mu.Lock()
	scope, session := c.scope, c.session
	c.mu.Unlock()

	created, err := c.resource.Create(ctx, scope, payload)
	if err != nil {
		c.logger.Error("create failed", "scope", scope, "err", err)
		return zero, err
	}

	c.mu.Lock()
	if c.mounted && session == c.session && scope == c.scope {
		c.prepend(created)
	} else {
		c.logger.Debug("dropping create for a left scope", "scope", scope, "id", created.EntityID())
	}
	c.mu.Unlock()

	form.Reset()
	c.logger.Info("created", "id", created.EntityID())
	return created, nil
}

// HandleDelete confirms, deletes e, and removes it by id. It reports whether a delete was issued.
func (c *Controller[T]) HandleDelete(ctx context.Context, e T) (bool, error) {
	if c.Confirm != nil && !c.Confirm(e) {
		return false, nil
	}

	id := e.EntityID()
	if err := c.resource.Delete(ctx, id); err != nil {
		c.logger.Error("delete failed", "id", id, "err", err)
		return true, err
	}

	c.mu.Lock()
	if c.mounted {
		if i := c.indexIn(c.entities, id); i >= 0 {
			c.entities = slices.Delete(c.entities, i, i+1)
		}
	}
	c.mu.Unlock()

	c.logger.Info("deleted", "id", id)
	return true, nil
}

// HandleEdit updates e's editable field to value and replaces e at its current position with
// the server's entity. It satisfies [SaveFunc].
func (c *Controller[T]) HandleEdit(ctx context.Context, e T, value string) (T, error) {
	var zero T

	id := e.EntityID()
	updated, err := c.resource.Update(ctx, id, models.Payload{c.field: value})
	if err != nil {
		c.logger.Error("update failed", "id", id, "err", err)
		return zero, err
	}

	c.mu.Lock()
	if c.mounted {
		if i := c.indexIn(c.entities, id); i >= 0 {
			c.entities[i] = updated
		}
	}
	c.mu.Unlock()

	c.logger.Info("updated", "id", id)
	return updated, nil
}

// prepend inserts e first, dropping any older entry with the same id.
func (c *Controller[T]) prepend(e T) {
	if i := c.indexIn(c.entities, e.EntityID()); i >= 0 {
		c.entities = slices.Delete(c.entities, i, i+1)
	}
	c.entities = slices.Insert(c.entities, 0, e)
}

func (c *Controller[T]) indexIn(entities []T, id string) int {
	return slices.IndexFunc(entities, func(e T) bool { return e.EntityID() == id })
}

// Entities returns a copy of the collection.
func (c *Controller[T]) Entities() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.entities)
}

// Get returns the entity with id.
func (c *Controller[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexIn(c.entities, id); i >= 0 {
		return c.entities[i], true
	}
	var zero T
	return zero, false
}

// Index returns the position of id, or -1.
func (c *Controller[T]) Index(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexIn(c.entities, id)
}

func (c *Controller[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entities)
}

func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller[T]) Scope() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scope
}

// Parent returns the playlist the collection is scoped to, if the backend sent one.
func (c *Controller[T]) Parent() *models.Playlist {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parent
}

// Title returns the parent playlist title, falling back to [models.UnfiledTitle].
func (c *Controller[T]) Title() string {
	return models.ItemList{Playlist: c.Parent()}.Title()
}
