package ui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/plx/internal/collection"
	"github.com/desertthunder/plx/internal/formatter"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/services"
	"github.com/desertthunder/plx/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistsView ViewState = iota
	ItemsView
	SecurityView
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	logger    *log.Logger
	width     int
	height    int
	playlists *pane[models.Playlist]
	items     *pane[models.Item]
	security  *pane[models.SettingField]
	help      help.Model
	keys      keyMap
	openURL   func(string) error
}

// NewModel creates a new TUI model whose views talk to the backend through sender.
func NewModel(ctx context.Context, sender services.Sender, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	playlists := collection.NewController(collection.Playlists(services.NewPlaylistsClient(sender)), collection.FieldTitle, logger.With("view", "playlists"))
	items := collection.NewController(collection.Items(services.NewItemsClient(sender)), collection.FieldURL, logger.With("view", "items"))
	security := collection.NewController(collection.Security(services.NewSecurityClient(sender)), collection.FieldValue, logger.With("view", "security"))

	return &Model{
		ctx:    ctx,
		view:   PlaylistsView,
		logger: logger,
		playlists: newPane(paneConfig[models.Playlist]{
			view:      PlaylistsView,
			title:     func() string { return "Playlists" },
			newForm:   collection.NewPlaylistForm,
			field:     collection.FieldTitle,
			deletable: true,
			label:     func(p models.Playlist) string { return p.Title },
			value:     func(p models.Playlist) string { return p.Title },
			describe:  func(p models.Playlist) string { return "id " + p.ID },
		}, playlists, logger),
		items: newPane(paneConfig[models.Item]{
			view:      ItemsView,
			title:     items.Title,
			newForm:   collection.NewItemForm,
			field:     collection.FieldURL,
			deletable: true,
			label:     itemLabel,
			value:     func(i models.Item) string { return i.URL },
			describe:  func(i models.Item) string { return i.URL },
		}, items, logger),
		security: newPane(paneConfig[models.SettingField]{
			view:     SecurityView,
			title:    func() string { return "Security" },
			field:    collection.FieldValue,
			label:    func(f models.SettingField) string { return f.Key },
			value:    func(f models.SettingField) string { return f.Value },
			describe: func(f models.SettingField) string { return formatter.Mask(f.Value) },
		}, security, logger),
		help:    help.New(),
		keys:    newKeyMap(),
		openURL: shared.OpenBrowser,
	}
}

func itemLabel(i models.Item) string {
	if i.Title == "" {
		return i.URL
	}
	return i.Title
}

// Init initializes the TUI by fetching playlists.
func (m *Model) Init() tea.Cmd {
	return m.playlists.mount(m.ctx, "")
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playlists.setSize(msg.Width, msg.Height)
		m.items.setSize(msg.Width, msg.Height)
		m.security.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m, m.dispatch(msg)
	}

	return m, m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	helpView := m.help.ShortHelpView(m.keys.forView(m.view))

	switch m.view {
	case ItemsView:
		return m.items.render(helpView)
	case SecurityView:
		return m.security.render(helpView)
	default:
		return m.playlists.render(helpView)
	}
}

func (m *Model) dispatch(msg Msg) tea.Cmd {
	o := msg.outcome()
	if msg.kind == MsgOpened {
		if o.err != nil {
			m.logger.Error("open failed", "url", o.id, "err", o.err)
			m.items.setErr(o.err)
		}
		return nil
	}

	switch o.view {
	case ItemsView:
		return m.items.apply(msg)
	case SecurityView:
		return m.security.apply(msg)
	default:
		return m.playlists.apply(msg)
	}
}

func (m *Model) capturing() bool {
	switch m.view {
	case ItemsView:
		return m.items.capturing()
	case SecurityView:
		return m.security.capturing()
	default:
		return m.playlists.capturing()
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if !m.capturing() {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.back) && m.view != PlaylistsView:
			return m, m.back()
		}

		switch m.view {
		case PlaylistsView:
			if cmd, ok := m.handlePlaylistKeys(msg); ok {
				return m, cmd
			}
		case ItemsView:
			if key.Matches(msg, m.keys.open) {
				return m, m.openSelected()
			}
		}
	}

	var (
		cmd     tea.Cmd
		handled bool
	)
	switch m.view {
	case ItemsView:
		cmd, handled = m.items.handleKey(m.ctx, msg, m.keys)
	case SecurityView:
		cmd, handled = m.security.handleKey(m.ctx, msg, m.keys)
	default:
		cmd, handled = m.playlists.handleKey(m.ctx, msg, m.keys)
	}
	if handled {
		return m, cmd
	}
	return m, m.updateList(msg)
}

func (m *Model) handlePlaylistKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.enter):
		row := m.playlists.selected()
		if row == nil {
			return nil, true
		}
		return m.openItems(row.Entity().ID), true
	case key.Matches(msg, m.keys.unfiled):
		return m.openItems(""), true
	case key.Matches(msg, m.keys.security):
		m.view = SecurityView
		return m.security.mount(m.ctx, ""), true
	}
	return nil, false
}

// openItems shows the items of playlistID, or the unfiled bucket when it is empty.
func (m *Model) openItems(playlistID string) tea.Cmd {
	m.view = ItemsView
	return m.items.mount(m.ctx, playlistID)
}

// back returns to the playlists view. The left view is unmounted so late responses are ignored.
func (m *Model) back() tea.Cmd {
	switch m.view {
	case ItemsView:
		m.items.unmount()
	case SecurityView:
		m.security.unmount()
	}
	m.view = PlaylistsView
	return m.playlists.refresh(m.ctx)
}

func (m *Model) openSelected() tea.Cmd {
	row := m.items.selected()
	if row == nil {
		return nil
	}
	url := row.Entity().URL
	open := m.openURL
	return func() tea.Msg {
		return openedMsg(url, open(url))
	}
}

func (m *Model) updateList(msg tea.Msg) tea.Cmd {
	switch m.view {
	case ItemsView:
		return m.items.updateList(msg)
	case SecurityView:
		return m.security.updateList(msg)
	default:
		return m.playlists.updateList(msg)
	}
}
