package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plx/internal/metrics"
	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/repositories"
	"github.com/desertthunder/plx/internal/shared"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps the shared sentinels to response codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrValidation), errors.Is(err, shared.ErrMissingArgument), errors.Is(err, shared.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrPlaylistNotFound), errors.Is(err, shared.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func fail(w http.ResponseWriter, logger *log.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("handler failed", "err", err)
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, err.Error())
}

// requiredQuery returns the query parameter key or an [shared.ErrMissingArgument] error.
func requiredQuery(r *http.Request, key string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return "", fmt.Errorf("%w: %s query parameter is required", shared.ErrMissingArgument, key)
	}
	return v, nil
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	return nil
}

// PlaylistsHandler serves /playlists.
type PlaylistsHandler struct {
	repo   *repositories.PlaylistRepository
	logger *log.Logger
}

// NewPlaylistsHandler creates a [PlaylistsHandler] over repo.
func NewPlaylistsHandler(repo *repositories.PlaylistRepository, logger *log.Logger) *PlaylistsHandler {
	return &PlaylistsHandler{repo: repo, logger: logger}
}

func (h *PlaylistsHandler) Routes() []string { return []string{"/playlists"} }

func (h *PlaylistsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		playlists, err := h.repo.List()
		if err != nil {
			fail(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, playlists)

	case http.MethodPost:
		if err := parseForm(w, r); err != nil {
			fail(w, h.logger, err)
			return
		}
		playlist, err := h.repo.Create(r.PostForm.Get("title"))
		metrics.RecordMutation("playlists", "create", err)
		if err != nil {
			fail(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, playlist)

	case http.MethodPut:
		id, err := requiredQuery(r, "playlist_id")
		if err == nil {
			err = parseForm(w, r)
		}
		if err != nil {
			fail(w, h.logger, err)
			return
		}
		playlist, err := h.repo.Update(id, r.PostForm.Get("title"))
		metrics.RecordMutation("playlists", "update", err)
		if err != nil {
			fail(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, playlist)

	case http.MethodDelete:
		id, err := requiredQuery(r, "playlist_id")
		if err == nil {
			err = h.repo.Delete(id)
			metrics.RecordMutation("playlists", "delete", err)
		}
		if err != nil {
			fail(w, h.logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// ItemsHandler serves /items.
type ItemsHandler struct {
	repo      *repositories.ItemRepository
	playlists *repositories.PlaylistRepository
	logger    *log.Logger
}

// NewItemsHandler creates an [ItemsHandler]. playlists resolves the parent for list responses.
func NewItemsHandler(repo *repositories.ItemRepository, playlists *repositories.PlaylistRepository, logger *log.Logger) *ItemsHandler {
	return &ItemsHandler{repo: repo, playlists: playlists, logger: logger}
}

func (h *ItemsHandler) Routes() []string { return []string{"/items"} }

func (h *ItemsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)

	case http.MethodPost:
		if err := parseForm(w, r); err != nil {
			fail(w, h.logger, err)
			return
		}
		scope := strings.TrimSpace(r.URL.Query().Get("playlist_id"))
		item, err := h.repo.Create(scope, r.PostForm.Get("url"), r.PostForm.Get("title"))
		metrics.RecordMutation("items", "create", err)
		if err != nil {
			fail(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, item)

	case http.MethodPut:
		id, err := requiredQuery(r, "item_id")
		if err == nil {
			err = parseForm(w, r)
		}
		if err == nil && strings.TrimSpace(r.PostForm.Get("url")) == "" && strings.TrimSpace(r.PostForm.Get("title")) == "" {
			err = fmt.Errorf("%w: url or title is required", shared.ErrValidation)
		}
		if err != nil {
			fail(w, h.logger, err)
			return
		}
		item, err := h.repo.Update(id, r.PostForm.Get("url"), r.PostForm.Get("title"))
		metrics.RecordMutation("items", "update", err)
		if err != nil {
			fail(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, item)

	case http.MethodDelete:
		id, err := requiredQuery(r, "item_id")
		if err == nil {
			err = h.repo.Delete(id)
			metrics.RecordMutation("items", "delete", err)
		}
		if err != nil {
			fail(w, h.logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ItemsHandler) list(w http.ResponseWriter, r *http.Request) {
	list := models.ItemList{}

	if scope := strings.TrimSpace(r.URL.Query().Get("playlist_id")); scope != "" {
		parent, err := h.playlists.Get(scope)
		if err != nil {
			fail(w, h.logger, err)
			return
		}
		list.Playlist = &parent
	}

	items, err := h.repo.List(r.URL.Query().Get("playlist_id"))
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	list.Items = items

	writeJSON(w, http.StatusOK, list)
}

// SecurityHandler serves /security behind [RequireSecurityPage].
type SecurityHandler struct {
	repo   *repositories.SettingsRepository
	guard  Middleware
	logger *log.Logger
}

// NewSecurityHandler creates a [SecurityHandler]; every request is refused unless enabled.
func NewSecurityHandler(repo *repositories.SettingsRepository, enabled bool, logger *log.Logger) *SecurityHandler {
	return &SecurityHandler{repo: repo, guard: RequireSecurityPage(enabled), logger: logger}
}

func (h *SecurityHandler) Routes() []string { return []string{"/security"} }

func (h *SecurityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.guard(http.HandlerFunc(h.serve)).ServeHTTP(w, r)
}

func (h *SecurityHandler) serve(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := h.repo.Get()
		if err != nil {
			fail(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)

	case http.MethodPut:
		var settings models.SecuritySettings
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&settings); err != nil {
			fail(w, h.logger, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err))
			return
		}
		err := h.repo.Save(settings)
		metrics.RecordMutation("security", "update", err)
		if err != nil {
			fail(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
