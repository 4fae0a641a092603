// Package cmdtest runs noted commands against an in-memory notes server.
package cmdtest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/noted/internal/config"
	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/pkg/cmd/cmdutil"
)

// Note is a stored note in wire form.
type Note struct {
	ID      int    `json:"note_id"`
	Title   string `json:"note_title"`
	Content string `json:"note_content"`
}

// Server is a notes server that keeps everything in memory.
type Server struct {
	URL string

	mu       sync.Mutex
	notes    []Note
	nextID   int
	deleted  []int
	updates  map[int]int
	unlisted map[int]bool
}

func NewServer(t *testing.T, notes ...Note) *Server {
	t.Helper()
	s := &Server{notes: notes, nextID: len(notes) + 1, updates: map[int]int{}, unlisted: map[int]bool{}}
	for _, n := range notes {
		if n.ID >= s.nextID {
			s.nextID = n.ID + 1
		}
	}

	srv := httptest.NewServer(s.handler())
	t.Cleanup(srv.Close)
	s.URL = srv.URL
	return s
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["password"] != "hunter22" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
	})
	mux.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["user_email"] == "taken@gmail.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"Email already registered"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/notes", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			listed := make([]Note, 0, len(s.notes))
			for _, n := range s.notes {
				if !s.unlisted[n.ID] {
					listed = append(listed, n)
				}
			}
			_ = json.NewEncoder(w).Encode(listed)
		case http.MethodPost:
			var n Note
			_ = json.NewDecoder(r.Body).Decode(&n)
			n.ID = s.nextID
			s.nextID++
			s.notes = append(s.notes, n)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]int{"note_id": n.ID})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/notes/", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/notes/"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		i := s.index(id)
		if i < 0 {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Note not found"}`))
			return
		}

		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(s.notes[i])
		case http.MethodPut:
			var n Note
			_ = json.NewDecoder(r.Body).Decode(&n)
			n.ID = id
			s.notes[i] = n
			s.updates[id]++
			_, _ = w.Write([]byte(`{}`))
		case http.MethodDelete:
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			s.deleted = append(s.deleted, id)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	return mux
}

func (s *Server) index(id int) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Unlist keeps ids out of GET /notes while they stay reachable by id.
func (s *Server) Unlist(ids ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.unlisted[id] = true
	}
}

func (s *Server) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Note(nil), s.notes...)
}

func (s *Server) Deleted() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.deleted...)
}

func (s *Server) Updates(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates[id]
}

// NewState builds a state with memory storage pointed at url. A non-empty
// token signs the state in.
func NewState(t *testing.T, url, token string) *state.State {
	t.Helper()
	cfg := config.Default(t.TempDir())
	cfg.Storage = config.StorageMemory
	cfg.APIURL = url

	s, err := state.New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	if token != "" {
		require.NoError(t, s.Sessions.SetToken(token, nil))
	}
	return s
}

// Interactive overrides terminal detection for the rest of the test.
func Interactive(t *testing.T, on bool) {
	prev := cmdutil.IsInteractive
	cmdutil.IsInteractive = func() bool { return on }
	t.Cleanup(func() { cmdutil.IsInteractive = prev })
}

// Run executes cmd with args and returns what it printed.
func Run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
