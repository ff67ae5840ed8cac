package edge

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableDecide(t *testing.T) {
	table := NewTable("example.com", []string{"www", "Directory"})

	tests := []struct {
		name string
		host string
		path string
		want Decision
	}{
		{
			name: "reserved www label passes through",
			host: "www.example.com",
			path: "/about",
			want: Decision{Passthrough: true, Path: "/about"},
		},
		{
			name: "bare base domain passes through",
			host: "example.com",
			path: "/",
			want: Decision{Passthrough: true, Path: "/"},
		},
		{
			name: "region label rewrites to region page",
			host: "reeves-county-texas.example.com",
			path: "/",
			want: Decision{Path: "/region/reeves-county-texas/"},
		},
		{
			name: "path suffix is preserved",
			host: "reeves-county-texas.example.com",
			path: "/plumbers",
			want: Decision{Path: "/region/reeves-county-texas/plumbers"},
		},
		{
			name: "unknown label is rewritten without existence check",
			host: "unknown-region.example.com",
			path: "/",
			want: Decision{Path: "/region/unknown-region/"},
		},
		{
			name: "reserved labels match case-insensitively",
			host: "DIRECTORY.example.com",
			path: "/",
			want: Decision{Passthrough: true, Path: "/"},
		},
		{
			name: "port on the host is ignored",
			host: "reeves-county-texas.example.com:8080",
			path: "/",
			want: Decision{Path: "/region/reeves-county-texas/"},
		},
		{
			name: "single-label host passes through",
			host: "localhost",
			path: "/x",
			want: Decision{Passthrough: true, Path: "/x"},
		},
		{
			name: "empty path is normalized to root",
			host: "reeves-county-texas.example.com",
			path: "",
			want: Decision{Path: "/region/reeves-county-texas/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Decide(tt.host, tt.path))
		})
	}
}

func newTestRouter(t *testing.T, origin http.Handler) *Router {
	t.Helper()
	backend := httptest.NewServer(origin)
	t.Cleanup(backend.Close)
	originURL, err := url.Parse(backend.URL)
	require.NoError(t, err)
	return NewRouter(originURL, NewTable("example.com", DefaultReservedLabels))
}

func TestRouterForwarding(t *testing.T) {
	t.Run("reserved host is forwarded unchanged", func(t *testing.T) {
		var gotPath string
		router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte("about page"))
		}))

		req := httptest.NewRequest(http.MethodGet, "http://www.example.com/about", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "/about", gotPath)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "about page", rec.Body.String())
	})

	t.Run("region host is rewritten to the region page path", func(t *testing.T) {
		var gotPath string
		router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte("region page"))
		}))

		req := httptest.NewRequest(http.MethodGet, "http://reeves-county-texas.example.com/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "/region/reeves-county-texas/", gotPath)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("origin responses pass through verbatim", func(t *testing.T) {
		router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Origin", "yes")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, "no such region")
		}))

		req := httptest.NewRequest(http.MethodGet, "http://unknown-region.example.com/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "no such region", rec.Body.String())
		assert.Equal(t, "yes", rec.Header().Get("X-Origin"))
	})

	t.Run("unreachable origin yields bad gateway", func(t *testing.T) {
		originURL, err := url.Parse("http://127.0.0.1:1")
		require.NoError(t, err)
		router := NewRouter(originURL, NewTable("example.com", DefaultReservedLabels))

		req := httptest.NewRequest(http.MethodGet, "http://reeves-county-texas.example.com/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
