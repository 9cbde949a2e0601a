package cron

import (
	"testing"

	"webworker.GO/core/registry"
)

func TestRegister_Lookup(t *testing.T) {
	ran := false
	Register("Test:Lookup", "@every 1h", func(args ...string) {
		ran = len(args) == 1 && args[0] == "x"
	})
	defer Unregister("test:lookup")

	j, ok := Lookup("TEST:lookup")
	if !ok {
		t.Fatal("test:lookup not found")
	}
	if j.Schedule != "@every 1h" {
		t.Errorf("Schedule = %q, want @every 1h", j.Schedule)
	}
	j.Run("x")
	if !ran {
		t.Error("Run did not receive its arguments")
	}
	if _, ok := Jobs()["test:lookup"]; !ok {
		t.Error("Jobs() is missing test:lookup")
	}
}

func TestRegister_Panics(t *testing.T) {
	Register("dupjob", "@hourly", func(...string) {})
	defer Unregister("dupjob")

	tests := []struct {
		name string
		fn   func()
	}{
		{"duplicate", func() { Register("DUPJOB", "@daily", func(...string) {}) }},
		{"empty name", func() { Register("", "@daily", func(...string) {}) }},
		{"nil run", func() { Register("nilrun", "@daily", nil) }},
		{"locked", func() {
			Jobs()
			defer registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
			Register("late", "@daily", func(...string) {})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestStartCron_Schedules(t *testing.T) {
	Register("a", "@every 1h", func(...string) {})
	Register("b", "@every 1h", func(...string) {})
	Register("c", "", func(...string) {})
	defer Unregister("a")
	defer Unregister("b")
	defer Unregister("c")

	c, err := StartCron(map[string]string{"b": "", "c": "@every 2h"})
	if err != nil {
		t.Fatalf("StartCron: %v", err)
	}
	defer c.Stop()
	if n := len(c.Entries()); n != 2 {
		t.Errorf("entries = %d, want 2 (a and c)", n)
	}
}

func TestStartCron_BadSchedule(t *testing.T) {
	Register("broken", "every tuesday", func(...string) {})
	defer Unregister("broken")
	if _, err := StartCron(nil); err == nil {
		t.Error("expected error for invalid schedule")
	}
}
