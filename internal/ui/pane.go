package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/plx/internal/collection"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

type paneMode int

const (
	browsing paneMode = iota
	creating
	editing
)

// paneConfig describes how one resource is presented.
type paneConfig[T models.Entity] struct {
	view      ViewState
	title     func() string
	newForm   func() *collection.Form // nil when entities cannot be created
	field     string                  // form field filled by the create input
	deletable bool
	label     func(T) string // row title
	value     func(T) string // editable value
	describe  func(T) string // row description in display mode
}

// pane binds a collection controller to a list, a create input and the edit state of every row.
//
// Backend calls run in [tea.Cmd] goroutines; every other method is called from the update loop.
type pane[T models.Entity] struct {
	paneConfig[T]
	controller *collection.Controller[T]
	logger     *log.Logger

	rows    map[string]*collection.EditableItem[T]
	list    list.Model
	create  textinput.Model
	edit    textinput.Model
	mode    paneMode
	editing string
	pending []T
	status  string
	err     error
}

func newPane[T models.Entity](cfg paneConfig[T], controller *collection.Controller[T], logger *log.Logger) *pane[T] {
	create := textinput.New()
	create.Placeholder = cfg.field
	create.CharLimit = 500
	create.Width = 60

	edit := textinput.New()
	edit.CharLimit = 500
	edit.Width = 60

	return &pane[T]{
		paneConfig: cfg,
		controller: controller,
		logger:     logger,
		rows:       map[string]*collection.EditableItem[T]{},
		list:       newList(cfg.title()),
		create:     create,
		edit:       edit,
	}
}

// capturing reports whether keys belong to the pane rather than to navigation.
func (p *pane[T]) capturing() bool {
	if p.mode != browsing {
		return true
	}
	row := p.selected()
	return row != nil && row.Mode() == collection.ConfirmingDelete
}

func (p *pane[T]) setSize(w, h int) {
	p.list.SetSize(w-4, h-10)
}

// sync rebuilds the rows from the controller's collection. Rows whose entity left the collection are dropped
// along with any edit session.
func (p *pane[T]) sync() {
	entities := p.controller.Entities()
	rows := make(map[string]*collection.EditableItem[T], len(entities))
	items := make([]list.Item, len(entities))

	for i, e := range entities {
		id := e.EntityID()
		row, ok := p.rows[id]
		if ok {
			row.SetEntity(e, p.value(e))
		} else {
			row = collection.NewEditableItem(e, p.value(e), p.controller.HandleEdit, p.queueDelete, p.logger)
		}
		rows[id] = row
		items[i] = p.entry(row)
	}
	p.rows = rows

	if _, ok := rows[p.editing]; !ok && p.editing != "" {
		p.editing = ""
		p.edit.Blur()
		if p.mode == editing {
			p.mode = browsing
		}
	}

	p.list.Title = p.title()
	p.list.SetItems(items)
}

func (p *pane[T]) entry(row *collection.EditableItem[T]) entry {
	e := row.Entity()
	desc := p.describe(e)
	switch row.Mode() {
	case collection.Editing:
		desc = "editing…"
	case collection.Saving:
		desc = "saving…"
	case collection.ConfirmingDelete:
		desc = styles.warn.Render("delete? (y/n)")
	}
	if row.Mode() == collection.Editing && row.Err() != nil {
		desc = styles.err.Render(fmt.Sprintf("✗ %v", row.Err()))
	}
	return entry{id: e.EntityID(), title: p.label(e), desc: desc}
}

func (p *pane[T]) selected() *collection.EditableItem[T] {
	e, ok := p.list.SelectedItem().(entry)
	if !ok {
		return nil
	}
	return p.rows[e.id]
}

func (p *pane[T]) queueDelete(e T) {
	p.pending = append(p.pending, e)
}

func (p *pane[T]) setErr(err error) {
	p.err = err
	p.status = ""
}

func (p *pane[T]) setStatus(s string) {
	p.err = nil
	p.status = s
}

func (p *pane[T]) mount(ctx context.Context, scope string) tea.Cmd {
	p.controller.Unmount()
	p.controller.Attach()
	p.rows = map[string]*collection.EditableItem[T]{}
	p.mode, p.editing = browsing, ""
	p.setStatus("loading…")
	p.sync()
	return func() tea.Msg {
		return fetchedMsg(p.view, p.controller.FetchAll(ctx, scope))
	}
}

func (p *pane[T]) unmount() {
	p.controller.Unmount()
	p.rows = map[string]*collection.EditableItem[T]{}
	p.mode, p.editing = browsing, ""
	p.create.Blur()
	p.edit.Blur()
	p.sync()
}

func (p *pane[T]) refresh(ctx context.Context) tea.Cmd {
	scope := p.controller.Scope()
	p.setStatus("loading…")
	return func() tea.Msg {
		return fetchedMsg(p.view, p.controller.FetchAll(ctx, scope))
	}
}

// handleKey processes keys that belong to the pane. It reports false when the key was not used.
func (p *pane[T]) handleKey(ctx context.Context, msg tea.KeyMsg, keys keyMap) (tea.Cmd, bool) {
	switch p.mode {
	case creating:
		return p.updateCreate(ctx, msg), true
	case editing:
		return p.updateEdit(ctx, msg), true
	}

	row := p.selected()
	if row != nil && row.Mode() == collection.ConfirmingDelete {
		switch {
		case key.Matches(msg, keys.yes):
			row.ConfirmDelete(true)
			p.sync()
			return p.flushDeletes(ctx), true
		case key.Matches(msg, keys.no):
			row.ConfirmDelete(false)
			p.sync()
		}
		return nil, true
	}

	switch {
	case key.Matches(msg, keys.create) && p.newForm != nil:
		p.mode = creating
		return p.create.Focus(), true
	case key.Matches(msg, keys.edit) && row != nil:
		// a row left in edit mode by a failed save resumes with its draft
		if row.Mode() != collection.Editing && !row.BeginEdit() {
			return nil, true
		}
		p.mode, p.editing = editing, row.Entity().EntityID()
		p.edit.SetValue(row.Draft())
		p.edit.CursorEnd()
		p.sync()
		return p.edit.Focus(), true
	case key.Matches(msg, keys.del) && p.deletable && row != nil:
		row.RequestDelete()
		p.sync()
		return nil, true
	case key.Matches(msg, keys.refresh):
		return p.refresh(ctx), true
	}
	return nil, false
}

func (p *pane[T]) updateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

func (p *pane[T]) updateCreate(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		p.mode = browsing
		p.create.Blur()
		return nil
	case tea.KeyEnter:
		p.mode = browsing
		p.create.Blur()
		return p.submitCreate(ctx)
	}

	var cmd tea.Cmd
	p.create, cmd = p.create.Update(msg)
	return cmd
}

// submitCreate sends the create input through a fresh form so that overlapping submissions never share state.
func (p *pane[T]) submitCreate(ctx context.Context) tea.Cmd {
	form := p.newForm()
	if err := form.Set(p.field, p.create.Value()); err != nil {
		p.setErr(err)
		return nil
	}
	p.setStatus("saving…")
	return func() tea.Msg {
		created, err := p.controller.HandleCreate(ctx, form)
		if err != nil {
			return createdMsg(p.view, "", err)
		}
		return createdMsg(p.view, created.EntityID(), nil)
	}
}

func (p *pane[T]) updateEdit(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	row := p.rows[p.editing]
	if row == nil {
		p.mode, p.editing = browsing, ""
		return nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		row.Cancel()
		p.mode, p.editing = browsing, ""
		p.edit.Blur()
		p.sync()
		return nil
	case tea.KeyEnter:
		entity, value, err := row.BeginSubmit()
		if err != nil {
			p.setErr(err)
			return nil
		}
		p.mode = browsing
		p.edit.Blur()
		p.setStatus("saving…")
		p.sync()
		return func() tea.Msg {
			updated, err := p.controller.HandleEdit(ctx, entity, value)
			return savedMsg(p.view, entity.EntityID(), updated, err)
		}
	}

	var cmd tea.Cmd
	p.edit, cmd = p.edit.Update(msg)
	row.SetDraft(p.edit.Value())
	return cmd
}

func (p *pane[T]) flushDeletes(ctx context.Context) tea.Cmd {
	pending := p.pending
	p.pending = nil
	if len(pending) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(pending))
	for _, e := range pending {
		cmds = append(cmds, func() tea.Msg {
			_, err := p.controller.HandleDelete(ctx, e)
			return deletedMsg(p.view, e.EntityID(), err)
		})
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

// apply handles the settlement of a backend call started by this pane.
func (p *pane[T]) apply(msg Msg) tea.Cmd {
	o := msg.outcome()
	var cmd tea.Cmd

	switch msg.kind {
	case MsgFetched:
		if o.err != nil {
			p.setErr(fmt.Errorf("load failed: %w", o.err))
		} else {
			p.setStatus("")
		}
	case MsgCreated:
		switch {
		case errors.Is(o.err, shared.ErrValidation):
			p.setErr(o.err)
			p.mode = creating
			cmd = p.create.Focus()
		case o.err != nil:
			p.setErr(fmt.Errorf("create failed: %w", o.err))
		default:
			p.create.Reset()
			p.setStatus("created")
		}
	case MsgDeleted:
		if o.err != nil {
			p.setErr(fmt.Errorf("delete failed: %w", o.err))
		} else {
			p.setStatus("deleted")
		}
	case MsgSaved:
		cmd = p.settle(o)
	}

	p.sync()
	return cmd
}

func (p *pane[T]) settle(o outcome) tea.Cmd {
	row := p.rows[o.id]
	if row == nil {
		return nil
	}

	updated, _ := o.entity.(T)
	if err := row.Settle(updated, o.err); err != nil {
		p.setErr(fmt.Errorf("save failed: %w", err))
		if row.Mode() != collection.Editing {
			return nil
		}
		if p.editing != o.id || p.mode != browsing {
			// another input has focus; the row keeps its draft until the user returns to it
			return nil
		}
		p.mode = editing
		p.edit.SetValue(row.Draft())
		return p.edit.Focus()
	}

	if p.editing == o.id {
		p.editing = ""
	}
	p.setStatus("saved")
	return nil
}

func (p *pane[T]) render(helpView string) string {
	out := p.list.View()

	switch p.mode {
	case creating:
		out += "\n" + styles.prompt.Render("New "+p.field+": ") + p.create.View()
	case editing:
		out += "\n" + styles.prompt.Render("Edit: ") + p.edit.View()
	}

	switch {
	case p.err != nil:
		out += "\n" + styles.err.Render(p.err.Error())
	case p.status != "":
		out += "\n" + styles.ok.Render(p.status)
	}

	return out + "\n\n" + helpView
}
