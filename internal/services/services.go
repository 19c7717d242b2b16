package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// Query parameter names understood by the backend.
const (
	ParamPlaylistID = "playlist_id"
	ParamItemID     = "item_id"
)

// Sender sends a single request to the backend.
type Sender interface {
	Send(ctx context.Context, req *Request) (*APIResponse, error)
}

// Request describes one backend call. At most one of Form and JSON is used as the body.
type Request struct {
	Method string
	Path   string
	Params url.Values
	Form   url.Values
	JSON   any
}

// URL returns the path with encoded query parameters.
func (r Request) URL() string {
	if len(r.Params) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Params.Encode()
}

func decode[T any](resp *APIResponse) (T, error) {
	var v T
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		return v, fmt.Errorf("%w: %v", shared.ErrDecode, err)
	}
	return v, nil
}

// PlaylistsClient performs CRUD on /playlists.
type PlaylistsClient struct {
	sender Sender
}

// NewPlaylistsClient creates a [PlaylistsClient] using sender.
func NewPlaylistsClient(sender Sender) *PlaylistsClient {
	return &PlaylistsClient{sender: sender}
}

// List returns all playlists.
func (c *PlaylistsClient) List(ctx context.Context) ([]models.Playlist, error) {
	resp, err := c.sender.Send(ctx, &Request{Method: http.MethodGet, Path: "/playlists"})
	if err != nil {
		return nil, err
	}

	playlists, err := decode[[]models.Playlist](resp)
	if err != nil {
		return nil, err
	}
	if playlists == nil {
		playlists = []models.Playlist{}
	}
	return playlists, nil
}

// Create creates a playlist from payload (expects a "title" field).
func (c *PlaylistsClient) Create(ctx context.Context, payload models.Payload) (models.Playlist, error) {
	resp, err := c.sender.Send(ctx, &Request{
		Method: http.MethodPost,
		Path:   "/playlists",
		Form:   payload.Values(),
	})
	if err != nil {
		return models.Playlist{}, err
	}
	return decode[models.Playlist](resp)
}

// Update modifies the playlist with id.
func (c *PlaylistsClient) Update(ctx context.Context, id string, payload models.Payload) (models.Playlist, error) {
	resp, err := c.sender.Send(ctx, &Request{
		Method: http.MethodPut,
		Path:   "/playlists",
		Params: url.Values{ParamPlaylistID: {id}},
		Form:   payload.Values(),
	})
	if err != nil {
		return models.Playlist{}, err
	}
	return decode[models.Playlist](resp)
}

// Delete removes the playlist with id.
func (c *PlaylistsClient) Delete(ctx context.Context, id string) error {
	_, err := c.sender.Send(ctx, &Request{
		Method: http.MethodDelete,
		Path:   "/playlists",
		Params: url.Values{ParamPlaylistID: {id}},
	})
	return err
}

// ItemsClient performs CRUD on /items.
type ItemsClient struct {
	sender Sender
}

// NewItemsClient creates an [ItemsClient] using sender.
func NewItemsClient(sender Sender) *ItemsClient {
	return &ItemsClient{sender: sender}
}

// scopeParams omits the scope entirely when it is empty.
func scopeParams(scopeID string) url.Values {
	if scopeID == "" {
		return nil
	}
	return url.Values{ParamPlaylistID: {scopeID}}
}

// List returns the items of playlist scopeID, or the unfiled items when scopeID is empty.
//
// Both the {playlist, items} envelope and a bare array are accepted.
func (c *ItemsClient) List(ctx context.Context, scopeID string) (models.ItemList, error) {
	resp, err := c.sender.Send(ctx, &Request{
		Method: http.MethodGet,
		Path:   "/items",
		Params: scopeParams(scopeID),
	})
	if err != nil {
		return models.ItemList{}, err
	}

	var list models.ItemList
	if trimmed := bytes.TrimSpace(resp.Body); len(trimmed) > 0 && trimmed[0] == '[' {
		items, err := decode[[]models.Item](resp)
		if err != nil {
			return models.ItemList{}, err
		}
		list.Items = items
	} else {
		list, err = decode[models.ItemList](resp)
		if err != nil {
			return models.ItemList{}, err
		}
	}

	if list.Items == nil {
		list.Items = []models.Item{}
	}
	return list, nil
}

// Create adds an item (expects a "url" field) to playlist scopeID, or to the unfiled bucket.
func (c *ItemsClient) Create(ctx context.Context, scopeID string, payload models.Payload) (models.Item, error) {
	resp, err := c.sender.Send(ctx, &Request{
		Method: http.MethodPost,
		Path:   "/items",
		Params: scopeParams(scopeID),
		Form:   payload.Values(),
	})
	if err != nil {
		return models.Item{}, err
	}
	return decode[models.Item](resp)
}

// Update modifies the item with id.
func (c *ItemsClient) Update(ctx context.Context, id string, payload models.Payload) (models.Item, error) {
	resp, err := c.sender.Send(ctx, &Request{
		Method: http.MethodPut,
		Path:   "/items",
		Params: url.Values{ParamItemID: {id}},
		Form:   payload.Values(),
	})
	if err != nil {
		return models.Item{}, err
	}
	return decode[models.Item](resp)
}

// Delete removes the item with id.
func (c *ItemsClient) Delete(ctx context.Context, id string) error {
	_, err := c.sender.Send(ctx, &Request{
		Method: http.MethodDelete,
		Path:   "/items",
		Params: url.Values{ParamItemID: {id}},
	})
	return err
}

// SecurityClient reads and writes /security.
type SecurityClient struct {
	sender Sender
}

// NewSecurityClient creates a [SecurityClient] using sender.
func NewSecurityClient(sender Sender) *SecurityClient {
	return &SecurityClient{sender: sender}
}

// Get returns the stored settings.
func (c *SecurityClient) Get(ctx context.Context) (models.SecuritySettings, error) {
	resp, err := c.sender.Send(ctx, &Request{Method: http.MethodGet, Path: "/security"})
	if err != nil {
		return models.SecuritySettings{}, err
	}
	return decode[models.SecuritySettings](resp)
}

// Update replaces the stored settings and returns what the backend saved.
func (c *SecurityClient) Update(ctx context.Context, settings models.SecuritySettings) (models.SecuritySettings, error) {
	resp, err := c.sender.Send(ctx, &Request{
		Method: http.MethodPut,
		Path:   "/security",
		JSON:   settings,
	})
	if err != nil {
		return models.SecuritySettings{}, err
	}
	return decode[models.SecuritySettings](resp)
}
