package arcgis

import (
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeAdmin is an in-memory admin endpoint. Routes are keyed by the path
// below /arcgis/admin/ and return fixed bodies.
type fakeAdmin struct {
	mu       sync.Mutex
	routes   map[string]string
	statuses map[string]int
	requests []*recordedRequest
}

type recordedRequest struct {
	Path   string
	Query  url.Values
	Form   url.Values
	Header http.Header
}

func newFakeAdmin() *fakeAdmin {
	return &fakeAdmin{
		routes:   make(map[string]string),
		statuses: make(map[string]int),
	}
}

func (f *fakeAdmin) handle(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = body
}

func (f *fakeAdmin) fail(path string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[path] = code
}

func (f *fakeAdmin) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.requests))
	for _, r := range f.requests {
		out = append(out, r.Path)
	}
	return out
}

func (f *fakeAdmin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	path := strings.TrimPrefix(r.URL.Path, "/arcgis/admin/")

	f.mu.Lock()
	f.requests = append(f.requests, &recordedRequest{
		Path:   path,
		Query:  r.URL.Query(),
		Form:   r.PostForm,
		Header: r.Header.Clone(),
	})
	code, failed := f.statuses[path]
	body, ok := f.routes[path]
	f.mu.Unlock()

	if failed {
		http.Error(w, "boom", code)
		return
	}
	if !ok {
		_, _ = w.Write([]byte(`{"status":"error","messages":["Service '` + path + `' not found. "],"code":404}`))
		return
	}
	_, _ = w.Write([]byte(body))
}

// newTestClient starts fake behind an httptest server and returns a client
// with a token already set.
func newTestClient(t *testing.T, fake *fakeAdmin) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)

	conn := &Connection{
		Scheme:   "http",
		Server:   host,
		Port:     port,
		Instance: "arcgis",
		User:     "admin",
		Password: "secret",
		Token:    "tok",
	}
	return NewClient(conn)
}
