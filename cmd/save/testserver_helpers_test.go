package save

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeServices serves OpenBD /get and NDL /thumbnail responses for known ISBNs.
type fakeServices struct {
	mu          sync.Mutex
	metadata    map[string]string // isbn -> raw JSON document
	covers      map[string]bool
	getRequests []string
	failGet     bool
}

func newFakeServices(t *testing.T) (*fakeServices, *httptest.Server) {
	t.Helper()
	f := &fakeServices{metadata: map[string]string{}, covers: map[string]bool{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/get", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		query := r.URL.Query().Get("isbn")
		f.getRequests = append(f.getRequests, query)
		if f.failGet {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		items := make([]string, 0)
		for _, isbn := range strings.Split(query, ",") {
			doc, ok := f.metadata[isbn]
			if !ok {
				doc = "null"
			}
			items = append(items, doc)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, "[%s]", strings.Join(items, ","))
	})
	mux.HandleFunc("/thumbnail/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		isbn := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/thumbnail/"), ".jpg")
		if !f.covers[isbn] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("jpeg"))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return f, server
}

func (f *fakeServices) addBook(isbn, title string) {
	f.metadata[isbn] = fmt.Sprintf(
		`{"onix": {"DescriptiveDetail": {"TitleDetail": {"TitleElement": {"TitleText": {"content": %q}}}}}, "summary": {"isbn": %q}}`,
		title, isbn)
}
