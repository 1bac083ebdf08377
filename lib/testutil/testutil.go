package testutil

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"statcharts/pkg/migrations"
)

// OpenDB opens an in-memory sqlite database with the schema applied,
// closed when the test finishes.
func OpenDB(t testing.TB, schema string) *sql.DB {
	db, err := migrations.OpenAndMigrateDB(schema, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// Fixture reads testdata/<name> relative to the package under test.
func Fixture(t testing.TB, name string) []byte {
	contents, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return contents
}

// Route is a canned response served by a Server.
type Route struct {
	Status int
	Body   any
}

// Server is an httptest server answering "METHOD /path" keys with canned
// JSON, counting how often each key was requested.
type Server struct {
	*httptest.Server

	mutex  sync.Mutex
	routes map[string]Route
	hits   map[string]int
	bodies map[string][]byte
}

func NewServer(t testing.TB, routes map[string]Route) *Server {
	s := &Server{
		routes: routes,
		hits:   map[string]int{},
		bodies: map[string][]byte{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	body, _ := io.ReadAll(r.Body)
	r.Body.Close()

	s.mutex.Lock()
	s.hits[key]++
	s.bodies[key] = body
	route, ok := s.routes[key]
	s.mutex.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	status := route.Status
	if status == 0 {
		status = http.StatusOK
	}

	var payload []byte
	switch v := route.Body.(type) {
	case []byte:
		payload = v
	case string:
		payload = []byte(v)
	default:
		var err error
		payload, err = json.Marshal(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(payload)
}

// Hits returns how many requests were made for "METHOD /path".
func (s *Server) Hits(key string) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.hits[key]
}

// LastBody returns the body of the last request made for "METHOD /path".
func (s *Server) LastBody(key string) []byte {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.bodies[key]
}
