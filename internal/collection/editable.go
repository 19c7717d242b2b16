package collection

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// Mode is the state of an [EditableItem].
type Mode int

const (
	Display Mode = iota
	Editing
	Saving
	ConfirmingDelete
)

func (m Mode) String() string {
	switch m {
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	case ConfirmingDelete:
		return "confirming-delete"
	default:
		return "display"
	}
}

// SaveFunc persists value for entity and returns the server's version of it.
type SaveFunc[T models.Entity] func(ctx context.Context, entity T, value string) (T, error)

// EditableItem presents one entity in display mode or single-field edit mode.
//
// It is not safe for concurrent use; the owning view drives it from its update loop.
type EditableItem[T models.Entity] struct {
	entity   T
	value    string
	draft    string
	mode     Mode
	lastErr  error
	save     SaveFunc[T]
	onDelete func(T)
	logger   *log.Logger
}

// NewEditableItem creates an item showing value for entity.
func NewEditableItem[T models.Entity](entity T, value string, save SaveFunc[T], onDelete func(T), logger *log.Logger) *EditableItem[T] {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &EditableItem[T]{entity: entity, value: value, save: save, onDelete: onDelete, logger: logger}
}

func (it *EditableItem[T]) Entity() T { return it.entity }
func (it *EditableItem[T]) Value() string { return it.value }
func (it *EditableItem[T]) Draft() string { return it.draft }
func (it *EditableItem[T]) Mode() Mode { return it.mode }

// Err returns the error of the last failed save, cleared by the next successful one.
func (it *EditableItem[T]) Err() error { return it.lastErr }

// BeginEdit enters edit mode with the draft seeded from the display value.
func (it *EditableItem[T]) BeginEdit() bool {
	if it.mode != Display {
		return false
	}
	it.draft = it.value
	it.mode = Editing
	return true
}

// SetDraft replaces the in-progress value.
func (it *EditableItem[T]) SetDraft(v string) error {
	if it.mode != Editing {
		return shared.ErrNotEditing
	}
	it.draft = v
	return nil
}

// Cancel leaves edit mode and discards the draft.
func (it *EditableItem[T]) Cancel() error {
	if it.mode != Editing {
		return shared.ErrNotEditing
	}
	it.draft = ""
	it.mode = Display
	return nil
}

// BeginSubmit validates the draft and moves to Saving. The caller performs the save and
// reports the outcome with [EditableItem.Settle].
func (it *EditableItem[T]) BeginSubmit() (T, string, error) {
	var zero T
	if it.mode != Editing {
		return zero, "", shared.ErrNotEditing
	}
	if strings.TrimSpace(it.draft) == "" {
		return zero, "", fmt.Errorf("%w: value is required", shared.ErrValidation)
	}
	it.mode = Saving
	return it.entity, it.draft, nil
}

// Settle applies the save outcome. Success returns to Display with the draft as the new value;
// failure is logged and the item stays in edit mode with the draft intact.
func (it *EditableItem[T]) Settle(updated T, err error) error {
	if it.mode != Saving {
		return shared.ErrNotEditing
	}
	if err != nil {
		it.lastErr = err
		it.mode = Editing
		it.logger.Error("save failed", "id", it.entity.EntityID(), "err", err)
		return err
	}

	it.entity = updated
	it.value = it.draft
	it.draft = ""
	it.lastErr = nil
	it.mode = Display
	return nil
}

// Submit saves the draft through the save callback and waits for it to settle.
func (it *EditableItem[T]) Submit(ctx context.Context) error {
	entity, draft, err := it.BeginSubmit()
	if err != nil {
		return err
	}
	updated, err := it.save(ctx, entity, draft)
	return it.Settle(updated, err)
}

// RequestDelete asks for confirmation before the delete intent is emitted.
func (it *EditableItem[T]) RequestDelete() bool {
	if it.mode != Display {
		return false
	}
	it.mode = ConfirmingDelete
	return true
}

// ConfirmDelete resolves a pending delete request. When ok the delete callback receives the
// entity. It reports whether the intent was emitted.
func (it *EditableItem[T]) ConfirmDelete(ok bool) bool {
	if it.mode != ConfirmingDelete {
		return false
	}
	it.mode = Display
	if ok && it.onDelete != nil {
		it.onDelete(it.entity)
	}
	return ok
}

// SetEntity refreshes the entity and display value after the owner's collection changed.
// An open edit session keeps its draft.
func (it *EditableItem[T]) SetEntity(entity T, value string) {
	it.entity = entity
	it.value = value
}
