// Package formatter renders playlists, items and settings for the terminal and exports item lists to
// files (CSV, Markdown, plain text, JSON, YAML).
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat maps a flag value to a [Format]. Common aliases ("md", "text", "yml") are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yml", "yaml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
}

// Extension returns the file extension used when writing f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText, FormatTable:
		return ".txt"
	default:
		return "." + string(f)
	}
}

// ExportToCSV converts an item list to CSV with columns: ID, Title, URL, Playlist
func ExportToCSV(list models.ItemList) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Title", "URL", "Playlist"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range list.Items {
		if err := writer.Write([]string{item.ID, item.Title, item.URL, item.PlaylistID}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportToMarkdown converts an item list to a Markdown document with one link per item.
func ExportToMarkdown(list models.ItemList) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", list.Title())
	fmt.Fprintf(&buf, "**Items**: %d\n\n", len(list.Items))
	buf.WriteString("## Items\n\n")
	for i, item := range list.Items {
		title := item.Title
		if title == "" {
			title = item.URL
		}
		fmt.Fprintf(&buf, "%d. [%s](%s)\n", i+1, escapeMarkdown(title), item.URL)
	}
	return buf.Bytes(), nil
}

// ExportToText converts an item list to plain text.
func ExportToText(list models.ItemList) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", list.Title())
	fmt.Fprintf(&buf, "Items: %d\n\n", len(list.Items))
	for i, item := range list.Items {
		if item.Title == "" || item.Title == item.URL {
			fmt.Fprintf(&buf, "%d. %s\n", i+1, item.URL)
			continue
		}
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, item.Title, item.URL)
	}
	return buf.Bytes(), nil
}

// ExportToJSON converts an item list to indented JSON. Items are never encoded as null.
func ExportToJSON(list models.ItemList) ([]byte, error) {
	if list.Items == nil {
		list.Items = []models.Item{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToYAML converts an item list to YAML.
func ExportToYAML(list models.ItemList) ([]byte, error) {
	if list.Items == nil {
		list.Items = []models.Item{}
	}
	data, err := yaml.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}

// Export encodes list in the given format. [FormatTable] renders the same table as [WriteItems].
func Export(list models.ItemList, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(list)
	case FormatMarkdown:
		return ExportToMarkdown(list)
	case FormatText:
		return ExportToText(list)
	case FormatJSON:
		return ExportToJSON(list)
	case FormatYAML:
		return ExportToYAML(list)
	case FormatTable:
		var buf bytes.Buffer
		WriteItems(&buf, list)
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
}

// WriteExport writes list into dir as {slug}{ext} and returns the created path.
//
// The base name is derived from the playlist title, falling back to the playlist id.
func WriteExport(list models.ItemList, format Format, dir string) (string, error) {
	data, err := Export(list, format)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, FileName(list)+format.Extension())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// WriteManifest writes v as indented JSON to path.
func WriteManifest(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// FileName returns a filesystem-safe base name for list.
func FileName(list models.ItemList) string {
	slug := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(list.Title()), "-"), "-")
	if slug == "" && list.Playlist != nil {
		slug = list.Playlist.ID
	}
	if slug == "" {
		slug = "items"
	}
	if list.Playlist != nil && list.Playlist.ID != "" && slug != list.Playlist.ID {
		slug = slug + "_" + list.Playlist.ID
	}
	return slug
}

func escapeMarkdown(s string) string {
	return strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
}

func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	return table
}

// WritePlaylists renders playlists as a table.
func WritePlaylists(w io.Writer, playlists []models.Playlist) {
	table := newTable(w, "ID", "TITLE")
	for _, p := range playlists {
		table.Append([]string{p.ID, p.Title})
	}
	table.Render()
}

// WriteItems renders an item list as a table, preceded by the list title.
func WriteItems(w io.Writer, list models.ItemList) {
	fmt.Fprintf(w, "%s (%d)\n", list.Title(), len(list.Items))
	table := newTable(w, "ID", "TITLE", "URL")
	for _, item := range list.Items {
		table.Append([]string{item.ID, item.Title, item.URL})
	}
	table.Render()
}

// WriteSettings renders security settings as a table. Values are masked unless reveal is set.
func WriteSettings(w io.Writer, fields []models.SettingField, reveal bool) {
	table := newTable(w, "KEY", "VALUE")
	for _, f := range fields {
		value := f.Value
		if !reveal {
			value = Mask(value)
		}
		table.Append([]string{f.Key, value})
	}
	table.Render()
}

// Mask hides all but the last four characters of a secret.
func Mask(s string) string {
	if s == "" {
		return "(unset)"
	}
	r := []rune(s)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}
