package offload

import "webworker.GO/scripts"

// WorkerLookup reports whether a handle opted in to worker execution.
type WorkerLookup interface {
	Worker(handle string) bool
}

// GroupSetter is the part of the script registry the print stage needs.
type GroupSetter interface {
	WorkerLookup
	SetGroup(handle string, recursive bool, group int) bool
}

// FilterPrintScripts puts the bootstrap handle first, in the head group, when
// any handle about to be printed is offloaded. The list is returned as is
// when nothing is offloaded.
func FilterPrintScripts(reg GroupSetter, handles []string) []string {
	for _, h := range handles {
		if !reg.Worker(h) {
			continue
		}
		reg.SetGroup(Handle, false, scripts.GroupHead)
		out := make([]string, 0, len(handles)+1)
		out = append(out, Handle)
		for _, other := range handles {
			if other != Handle {
				out = append(out, other)
			}
		}
		return out
	}
	return handles
}
