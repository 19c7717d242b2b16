package collection

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/services"
	"github.com/desertthunder/plx/internal/shared"
	tu "github.com/desertthunder/plx/internal/testing"
)

func TestResources(t *testing.T) {
	ctx := context.Background()

	t.Run("Items Page Carries Parent", func(t *testing.T) {
		sender := (&tu.FakeSender{}).Respond(http.StatusOK, `{"playlist":{"id":"p1","title":"Mix"},"items":[{"id":"i1","url":"u"}]}`)
		c := NewController(Items(services.NewItemsClient(sender)), FieldURL, nil)

		if err := c.Mount(ctx, "p1"); err != nil {
			t.Fatalf("Mount failed: %v", err)
		}
		if c.Title() != "Mix" || c.Len() != 1 {
			t.Errorf("unexpected page: %q %v", c.Title(), c.Entities())
		}
		if got := sender.Last().URL(); got != "/items?playlist_id=p1" {
			t.Errorf("unexpected URL: %s", got)
		}
	})

	t.Run("Items Create Uses Current Scope", func(t *testing.T) {
		sender := (&tu.FakeSender{}).
			Respond(http.StatusOK, `{"playlist":null,"items":[]}`).
			Respond(http.StatusOK, `{"id":"i9","url":"https://example.com"}`)
		c := NewController(Items(services.NewItemsClient(sender)), FieldURL, nil)
		c.Mount(ctx, "")

		form := NewItemForm()
		form.Set(FieldURL, "https://example.com")
		if _, err := c.HandleCreate(ctx, form); err != nil {
			t.Fatalf("HandleCreate failed: %v", err)
		}

		req := sender.Last()
		if req.URL() != "/items" || req.Form.Get("url") != "https://example.com" {
			t.Errorf("unexpected create request: %s %v", req.URL(), req.Form)
		}
	})

	t.Run("Playlists Edit Sends Title", func(t *testing.T) {
		sender := (&tu.FakeSender{}).
			Respond(http.StatusOK, `[{"id":"1","title":"A"},{"id":"2","title":"B"}]`).
			Respond(http.StatusOK, `{"id":"2","title":"B2"}`)
		c := NewController(Playlists(services.NewPlaylistsClient(sender)), FieldTitle, nil)
		c.Mount(ctx, "")

		if _, err := c.HandleEdit(ctx, models.Playlist{ID: "2"}, "B2"); err != nil {
			t.Fatalf("HandleEdit failed: %v", err)
		}
		req := sender.Last()
		if req.URL() != "/playlists?playlist_id=2" || req.Form.Get("title") != "B2" {
			t.Errorf("unexpected update request: %s %v", req.URL(), req.Form)
		}
	})

	t.Run("Security", func(t *testing.T) {
		t.Run("Rows In Key Order", func(t *testing.T) {
			sender := (&tu.FakeSender{}).Respond(http.StatusOK, `{"youtube_apikey":"k"}`)
			c := NewController(Security(services.NewSecurityClient(sender)), FieldValue, nil)

			if err := c.Mount(ctx, ""); err != nil {
				t.Fatalf("Mount failed: %v", err)
			}
			if got := ids(c.Entities()); len(got) != 3 || got[0] != "youtube_apikey" {
				t.Errorf("unexpected rows: %v", got)
			}
		})

		t.Run("Edit Sends Full Settings", func(t *testing.T) {
			sender := (&tu.FakeSender{}).
				Respond(http.StatusOK, `{"youtube_apikey":"k","youtube_client_id":"c"}`).
				Respond(http.StatusOK, `{"youtube_apikey":"k","youtube_client_id":"c2"}`)
			c := NewController(Security(services.NewSecurityClient(sender)), FieldValue, nil)
			c.Mount(ctx, "")

			row, err := c.HandleEdit(ctx, models.SettingField{Key: "youtube_client_id"}, "c2")
			if err != nil {
				t.Fatalf("HandleEdit failed: %v", err)
			}
			if row.Value != "c2" {
				t.Errorf("expected saved value, got %+v", row)
			}

			body, ok := sender.Last().JSON.(models.SecuritySettings)
			if !ok {
				t.Fatalf("expected settings body, got %T", sender.Last().JSON)
			}
			if body.YouTubeAPIKey != "k" || body.YouTubeClientID != "c2" {
				t.Errorf("expected untouched keys kept, got %+v", body)
			}
			if c.Index("youtube_client_id") != 1 {
				t.Errorf("expected row kept in place, got %v", ids(c.Entities()))
			}
		})

		t.Run("Edit Without Prior Fetch Reads First", func(t *testing.T) {
			sender := (&tu.FakeSender{}).
				Respond(http.StatusOK, `{"youtube_secret_key":"s"}`).
				Respond(http.StatusOK, `{"youtube_apikey":"new","youtube_secret_key":"s"}`)
			res := Security(services.NewSecurityClient(sender))

			if _, err := res.Update(ctx, "youtube_apikey", models.Payload{FieldValue: "new"}); err != nil {
				t.Fatalf("Update failed: %v", err)
			}
			if len(sender.Requests) != 2 || sender.Requests[0].Method != http.MethodGet {
				t.Fatalf("expected GET then PUT, got %+v", sender.Requests)
			}
			body := sender.Last().JSON.(models.SecuritySettings)
			if body.YouTubeSecretKey != "s" {
				t.Errorf("expected fetched keys kept, got %+v", body)
			}
		})

		t.Run("Unknown Key", func(t *testing.T) {
			sender := (&tu.FakeSender{}).Respond(http.StatusOK, `{}`)
			res := Security(services.NewSecurityClient(sender))

			if _, err := res.Update(ctx, "nope", models.Payload{FieldValue: "x"}); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("Create And Delete Unsupported", func(t *testing.T) {
			res := Security(services.NewSecurityClient(&tu.FakeSender{}))

			if _, err := res.Create(ctx, "", nil); !errors.Is(err, shared.ErrNotImplemented) {
				t.Errorf("expected ErrNotImplemented, got %v", err)
			}
			if err := res.Delete(ctx, "youtube_apikey"); !errors.Is(err, shared.ErrNotImplemented) {
				t.Errorf("expected ErrNotImplemented, got %v", err)
			}
		})
	})
}
