// Package scripts is the page's script registry: registered handles, their
// inline payloads, print groups and the per-handle worker flag.
//
// A Registry is built per request and is not safe for concurrent use.
package scripts

// Position selects where inline content is printed relative to a handle's tag.
type Position string

const (
	PositionBefore Position = "before"
	PositionAfter  Position = "after"
)

// Print groups. Group 0 prints in the document head, 1 before </body>.
const (
	GroupHead   = 0
	GroupFooter = 1
)

// Script is one registered handle.
type Script struct {
	Handle  string
	Src     string
	Deps    []string
	Version string
	Group   int
	// Worker marks the script for execution inside the worker sandbox.
	Worker bool
	Before []string
	After  []string
}

// Args holds the optional registration arguments.
type Args struct {
	InFooter bool
	Worker   bool
}

// Registry maps handles to scripts and keeps the enqueue order.
type Registry struct {
	scripts map[string]*Script
	queue   []string
	queued  map[string]bool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		scripts: make(map[string]*Script),
		queued:  make(map[string]bool),
	}
}

// Add registers a handle. It returns false if the handle already exists.
func (r *Registry) Add(handle, src string, deps []string, version string, args Args) bool {
	if handle == "" {
		return false
	}
	if _, ok := r.scripts[handle]; ok {
		return false
	}
	s := &Script{
		Handle:  handle,
		Src:     src,
		Deps:    append([]string(nil), deps...),
		Version: version,
		Worker:  args.Worker,
	}
	if args.InFooter {
		s.Group = GroupFooter
	}
	r.scripts[handle] = s
	return true
}

// Get returns the script registered under handle.
func (r *Registry) Get(handle string) (*Script, bool) {
	s, ok := r.scripts[handle]
	return s, ok
}

// Registered reports whether handle exists.
func (r *Registry) Registered(handle string) bool {
	_, ok := r.scripts[handle]
	return ok
}

// AddInlineScript attaches inline JavaScript to handle.
func (r *Registry) AddInlineScript(handle, data string, pos Position) bool {
	s, ok := r.scripts[handle]
	if !ok || data == "" {
		return false
	}
	switch pos {
	case PositionBefore:
		s.Before = append(s.Before, data)
	case PositionAfter, "":
		s.After = append(s.After, data)
	default:
		return false
	}
	return true
}

// SetGroup assigns handle to a print group. With recursive set, every
// registered dependency is assigned as well.
func (r *Registry) SetGroup(handle string, recursive bool, group int) bool {
	s, ok := r.scripts[handle]
	if !ok {
		return false
	}
	s.Group = group
	if recursive {
		seen := map[string]bool{handle: true}
		r.setDepsGroup(s.Deps, group, seen)
	}
	return true
}

func (r *Registry) setDepsGroup(deps []string, group int, seen map[string]bool) {
	for _, dep := range deps {
		if seen[dep] {
			continue
		}
		seen[dep] = true
		if s, ok := r.scripts[dep]; ok {
			s.Group = group
			r.setDepsGroup(s.Deps, group, seen)
		}
	}
}

// Group returns the print group of handle, GroupHead for unknown handles.
func (r *Registry) Group(handle string) int {
	if s, ok := r.scripts[handle]; ok {
		return s.Group
	}
	return GroupHead
}

// SetWorker sets the worker flag on a registered handle.
func (r *Registry) SetWorker(handle string, worker bool) bool {
	s, ok := r.scripts[handle]
	if !ok {
		return false
	}
	s.Worker = worker
	return true
}

// Worker returns the worker flag for handle. Unknown handles are not offloaded.
func (r *Registry) Worker(handle string) bool {
	if s, ok := r.scripts[handle]; ok {
		return s.Worker
	}
	return false
}

// Enqueue appends handles to the print queue, skipping ones already queued.
func (r *Registry) Enqueue(handles ...string) {
	for _, h := range handles {
		if h == "" || r.queued[h] {
			continue
		}
		r.queued[h] = true
		r.queue = append(r.queue, h)
	}
}

// Queue returns a copy of the enqueued handles in order.
func (r *Registry) Queue() []string {
	return append([]string(nil), r.queue...)
}
