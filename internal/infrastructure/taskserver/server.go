// Package taskserver is a reference implementation of the task status endpoints
// the poller talks to. It renders task messages from an in-memory registry.
package taskserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

const (
	MessagesPath   = "/async_actions/messages/get/"
	TasksByIDsPath = "/async_actions/tasks_by_ids/"
	PagePath       = "/admin/tasks/"
)

type Options struct {
	ServiceName string
	// RequestLogs enables httplog request logging.
	RequestLogs bool
	JSONLogs    bool
}

type Server struct {
	registry *Registry
	router   chi.Router
}

func NewServer(registry *Registry, opts Options) *Server {
	if opts.ServiceName == "" {
		opts.ServiceName = "taskserver"
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if opts.RequestLogs {
		logger := httplog.NewLogger(opts.ServiceName, httplog.Options{JSON: opts.JSONLogs})
		r.Use(httplog.RequestLogger(logger))
	}

	s := &Server{registry: registry, router: r}
	r.Get(MessagesPath, s.handleMessages)
	r.Get(TasksByIDsPath, s.handleTasksByIDs)
	r.Get(PagePath, s.handlePage)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// checksum accepts both "123" and 123: pages render it as a data attribute and
// clients may send it back as a number.
type checksum string

func (c *checksum) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = checksum(s)
		return nil
	}
	if string(data) == "null" {
		*c = ""
		return nil
	}
	*c = checksum(strings.TrimSpace(string(data)))
	return nil
}

type msgRef struct {
	MsgID    string   `json:"msg_id"`
	TaskID   string   `json:"task_id"`
	Checksum checksum `json:"checksum"`
}

// handleMessages answers msgs={task_id: {msg_id, checksum}} keyed by msg id.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("msgs")
	if raw == "" {
		http.Error(w, "missing msgs parameter", http.StatusBadRequest)
		return
	}
	var msgs map[string]msgRef
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		http.Error(w, "malformed msgs parameter", http.StatusBadRequest)
		return
	}

	out := make(map[string]string, len(msgs))
	for taskID, ref := range msgs {
		frag, ok, err := s.changedFragment(taskID, string(ref.Checksum))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if !ok {
			continue
		}
		key := ref.MsgID
		if key == "" {
			key = taskID
		}
		out[key] = frag
	}
	writeJSON(w, out)
}

// handleTasksByIDs answers task_id=checksum pairs keyed by task id.
func (s *Server) handleTasksByIDs(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]string)
	for taskID, values := range r.URL.Query() {
		sum := ""
		if len(values) > 0 {
			sum = values[0]
		}
		frag, ok, err := s.changedFragment(taskID, sum)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if ok {
			out[taskID] = frag
		}
	}
	writeJSON(w, out)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.registry.Page()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// changedFragment skips unknown and PENDING tasks and tasks the client already shows.
func (s *Server) changedFragment(taskID, known string) (string, bool, error) {
	t, ok := s.registry.Get(taskID)
	if !ok || t.State == StatePending {
		return "", false, nil
	}
	if t.Checksum() == known {
		return "", false, nil
	}
	frag, err := s.registry.Fragment(t)
	if err != nil {
		return "", false, err
	}
	return frag, true, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
