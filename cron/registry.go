package cron

import (
	"strings"
	"sync"

	"webworker.GO/core/registry"
)

// Job is a scheduled function. Schedule uses robfig/cron syntax.
type Job struct {
	Schedule string
	Run      func(args ...string)
}

type namedJob struct {
	name string
	job  Job
}

var mu sync.Mutex

func registered() []namedJob {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCron); ok && v != nil {
		return v.([]namedJob)
	}
	return nil
}

// Register adds a job under a case-insensitive name. Call from init().
// Panics on an empty or duplicate name, or once the scheduler started.
func Register(name, schedule string, run func(...string)) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		panic("cron: jobs locked (register only during init)")
	}
	name = strings.ToLower(name)
	if name == "" || run == nil {
		panic("cron: job needs a name and a run function")
	}
	list := registered()
	for _, j := range list {
		if j.name == name {
			panic("cron: duplicate job " + name)
		}
	}
	list = append(list, namedJob{name: name, job: Job{Schedule: schedule, Run: run}})
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, list)
}

// Unregister removes a job (for tests).
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	name = strings.ToLower(name)
	var out []namedJob
	for _, j := range registered() {
		if j.name != name {
			out = append(out, j)
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, out)
}

// Lookup returns the job registered under name, ignoring case.
func Lookup(name string) (Job, bool) {
	name = strings.ToLower(name)
	for _, j := range registered() {
		if j.name == name {
			return j.job, true
		}
	}
	return Job{}, false
}

// Jobs returns a snapshot of the registered jobs and locks the registry.
func Jobs() map[string]Job {
	list := registered()
	out := make(map[string]Job, len(list))
	for _, j := range list {
		out[j.name] = j.job
	}
	if !registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryCron)
	}
	return out
}
