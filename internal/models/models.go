package models

import (
	"net/url"
	"sort"
)

// UnfiledTitle is shown for the bucket of items that belong to no playlist.
const UnfiledTitle = "Added"

// Entity is any record with a backend-assigned identity.
type Entity interface {
	EntityID() string
}

var (
	_ Entity = Playlist{}
	_ Entity = Item{}
	_ Entity = SettingField{}
)

// Playlist is a named collection of items.
type Playlist struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

func (p Playlist) EntityID() string { return p.ID }

// Item is a media reference. PlaylistID is empty for unfiled items.
type Item struct {
	ID         string `json:"id" yaml:"id"`
	PlaylistID string `json:"playlist_id,omitempty" yaml:"playlist_id,omitempty"`
	URL        string `json:"url" yaml:"url"`
	Title      string `json:"title" yaml:"title"`
}

func (i Item) EntityID() string { return i.ID }

// ItemList is the response of the items list endpoint.
type ItemList struct {
	Playlist *Playlist `json:"playlist" yaml:"playlist"`
	Items    []Item    `json:"items" yaml:"items"`
}

// Title returns the parent playlist title, or [UnfiledTitle] for the unscoped bucket.
func (l ItemList) Title() string {
	if l.Playlist == nil || l.Playlist.Title == "" {
		return UnfiledTitle
	}
	return l.Playlist.Title
}

// SecuritySettings holds provider credentials stored by the backend.
type SecuritySettings struct {
	YouTubeAPIKey    string `json:"youtube_apikey"`
	YouTubeClientID  string `json:"youtube_client_id"`
	YouTubeSecretKey string `json:"youtube_secret_key"`
}

// SettingKeys lists the [SecuritySettings] keys in display order.
var SettingKeys = []string{"youtube_apikey", "youtube_client_id", "youtube_secret_key"}

// Fields flattens the settings into one [SettingField] per key.
func (s SecuritySettings) Fields() []SettingField {
	return []SettingField{
		{Key: "youtube_apikey", Value: s.YouTubeAPIKey},
		{Key: "youtube_client_id", Value: s.YouTubeClientID},
		{Key: "youtube_secret_key", Value: s.YouTubeSecretKey},
	}
}

// Get returns the value stored under key.
func (s SecuritySettings) Get(key string) (string, bool) {
	for _, f := range s.Fields() {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// With returns a copy of s with key set to value. Unknown keys report false.
func (s SecuritySettings) With(key, value string) (SecuritySettings, bool) {
	switch key {
	case "youtube_apikey":
		s.YouTubeAPIKey = value
	case "youtube_client_id":
		s.YouTubeClientID = value
	case "youtube_secret_key":
		s.YouTubeSecretKey = value
	default:
		return s, false
	}
	return s, true
}

// SettingField is a single key of [SecuritySettings]; the key is its identity.
type SettingField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (f SettingField) EntityID() string { return f.Key }

// Payload is a flat field name to value mapping.
type Payload map[string]string

// Values converts the payload for form encoding.
func (p Payload) Values() url.Values {
	v := make(url.Values, len(p))
	for k, val := range p {
		v.Set(k, val)
	}
	return v
}

// Keys returns the payload keys sorted.
func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
