package taskserver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

var ErrUnknownTask = errors.New("unknown task")

type Task struct {
	ID       string
	Name     string
	State    State
	Progress int
	// Result holds the return value, or the traceback of a failure.
	Result string
}

// MsgID is the element id the task message is rendered under.
func (t Task) MsgID() string {
	return "task-msg-" + t.ID
}

// Checksum changes whenever the rendered state changes.
func (t Task) Checksum() string {
	h := xxhash.New()
	_, _ = h.WriteString(t.Name)
	_, _ = h.WriteString("\x00" + string(t.State))
	_, _ = h.WriteString("\x00" + strconv.Itoa(t.Progress))
	_, _ = h.WriteString("\x00" + t.Result)
	return strconv.FormatUint(h.Sum64(), 10)
}

type Registry struct {
	mu    sync.RWMutex
	tasks map[string]Task
	order []string
	debug bool
}

// NewRegistry creates an empty registry. In debug mode task names and tracebacks are shown in full.
func NewRegistry(debug bool) *Registry {
	return &Registry{
		tasks: make(map[string]Task),
		debug: debug,
	}
}

func (r *Registry) Add(t Task) error {
	if t.ID == "" {
		return errors.New("task id is required")
	}
	if t.State == "" {
		t.State = StatePending
	}
	if _, ok := ParseState(string(t.State)); !ok {
		return fmt.Errorf("task %s: unknown state %q", t.ID, t.State)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tasks[t.ID]; !exists {
		r.order = append(r.order, t.ID)
	}
	r.tasks[t.ID] = t
	return nil
}

func (r *Registry) Get(id string) (Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	return t, ok
}

func (r *Registry) List() []Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id])
	}
	return out
}

func (r *Registry) Update(id string, fn func(*Task)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	fn(&t)
	t.ID = id
	r.tasks[id] = t
	return nil
}

func (r *Registry) SetState(id string, state State, result string) error {
	return r.Update(id, func(t *Task) {
		t.State = state
		t.Result = result
		if state == StateSuccess {
			t.Progress = 100
		}
	})
}

// Advance moves every unfinished task one step: PENDING -> RECEIVED -> STARTED,
// then progress in steps of 25 until SUCCESS. It returns the number of changed tasks.
func (r *Registry) Advance() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for _, id := range r.order {
		t := r.tasks[id]
		if t.State.Ready() {
			continue
		}
		if t.State == StateStarted {
			t.Progress += 25
			if t.Progress >= 100 {
				t.Progress = 100
				t.State = StateSuccess
				t.Result = "ok"
			}
		} else {
			t.State = t.State.next()
		}
		r.tasks[id] = t
		changed++
	}
	return changed
}

// Pending reports whether any task is not ready yet.
func (r *Registry) Pending() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tasks {
		if !t.State.Ready() {
			return true
		}
	}
	return false
}

func (r *Registry) displayName(name string) string {
	if r.debug {
		return name
	}
	return name[strings.LastIndex(name, ".")+1:]
}

func (r *Registry) displayResult(t Task) string {
	if r.debug || !t.State.Propagates() {
		return t.Result
	}
	lines := strings.Split(strings.TrimSpace(t.Result), "\n")
	return lines[len(lines)-1]
}
