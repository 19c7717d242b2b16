package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type echoHandler struct{}

func (echoHandler) Routes() []string { return []string{"/a", "/b"} }

func (echoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.URL.Path))
}

func TestBasicRouter(t *testing.T) {
	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		r := NewBasicRouter()
		r.Use(mark("first"), mark("second"))
		r.Handle(http.MethodGet, "/x", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

		if strings.Join(order, ",") != "first,second,handler" {
			t.Errorf("unexpected order: %v", order)
		}
	})

	t.Run("Method Mismatch", func(t *testing.T) {
		r := NewBasicRouter()
		r.Handle(http.MethodGet, "/x", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("Handler Routes", func(t *testing.T) {
		r := NewBasicRouter()
		r.Handler(echoHandler{})

		for _, path := range []string{"/a", "/b"} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Body.String() != path {
				t.Errorf("expected %s, got %q", path, rec.Body.String())
			}
		}
	})
}

func TestRequireSecurityPage(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	RequireSecurityPage(false)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/security", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 when disabled, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	RequireSecurityPage(true)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/security", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected pass-through when enabled, got %d", rec.Code)
	}
}
