package scripts

import (
	"reflect"
	"testing"
)

func TestRegistry_Add(t *testing.T) {
	r := New()
	if !r.Add("gtag", "https://example.com/gtag.js", nil, "1", Args{}) {
		t.Fatal("Add: want true")
	}
	if r.Add("gtag", "other.js", nil, "", Args{}) {
		t.Error("Add duplicate: want false")
	}
	if r.Add("", "x.js", nil, "", Args{}) {
		t.Error("Add empty handle: want false")
	}
	s, ok := r.Get("gtag")
	if !ok {
		t.Fatal("Get: want true")
	}
	if s.Src != "https://example.com/gtag.js" {
		t.Errorf("Src = %q, want first registration", s.Src)
	}
	if s.Group != GroupHead {
		t.Errorf("Group = %d, want head", s.Group)
	}
}

func TestRegistry_AddInFooter(t *testing.T) {
	r := New()
	r.Add("late", "late.js", nil, "", Args{InFooter: true})
	if got := r.Group("late"); got != GroupFooter {
		t.Errorf("Group = %d, want footer", got)
	}
}

func TestRegistry_Worker_DefaultsFalse(t *testing.T) {
	r := New()
	if r.Worker("never-registered") {
		t.Error("Worker unknown handle: want false")
	}
	r.Add("plain", "plain.js", nil, "", Args{})
	if r.Worker("plain") {
		t.Error("Worker unset flag: want false")
	}
	r.Add("offloaded", "off.js", nil, "", Args{Worker: true})
	if !r.Worker("offloaded") {
		t.Error("Worker from Args: want true")
	}
	if !r.SetWorker("plain", true) || !r.Worker("plain") {
		t.Error("SetWorker: want flag set")
	}
	if r.SetWorker("missing", true) {
		t.Error("SetWorker unknown handle: want false")
	}
}

func TestRegistry_AddInlineScript(t *testing.T) {
	r := New()
	r.Add("h", "", nil, "", Args{})
	r.AddInlineScript("h", "a();", PositionBefore)
	r.AddInlineScript("h", "b();", "")
	r.AddInlineScript("h", "c();", PositionAfter)
	if r.AddInlineScript("h", "", PositionAfter) {
		t.Error("AddInlineScript empty data: want false")
	}
	if r.AddInlineScript("missing", "x();", PositionAfter) {
		t.Error("AddInlineScript unknown handle: want false")
	}
	if r.AddInlineScript("h", "x();", "middle") {
		t.Error("AddInlineScript bad position: want false")
	}
	s, _ := r.Get("h")
	if !reflect.DeepEqual(s.Before, []string{"a();"}) {
		t.Errorf("Before = %v, want [a();]", s.Before)
	}
	if !reflect.DeepEqual(s.After, []string{"b();", "c();"}) {
		t.Errorf("After = %v, want [b(); c();]", s.After)
	}
}

func TestRegistry_SetGroupRecursive(t *testing.T) {
	r := New()
	r.Add("a", "a.js", nil, "", Args{InFooter: true})
	r.Add("b", "b.js", []string{"a", "b"}, "", Args{InFooter: true})
	r.Add("c", "c.js", []string{"b"}, "", Args{InFooter: true})
	if !r.SetGroup("c", true, GroupHead) {
		t.Fatal("SetGroup: want true")
	}
	for _, h := range []string{"a", "b", "c"} {
		if got := r.Group(h); got != GroupHead {
			t.Errorf("Group(%s) = %d, want head", h, got)
		}
	}
	if r.SetGroup("missing", false, GroupHead) {
		t.Error("SetGroup unknown handle: want false")
	}
}

func TestRegistry_Enqueue(t *testing.T) {
	r := New()
	r.Enqueue("a", "b", "a", "", "c")
	if got, want := r.Queue(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Queue = %v, want %v", got, want)
	}
	q := r.Queue()
	q[0] = "mutated"
	if r.Queue()[0] != "a" {
		t.Error("Queue must return a copy")
	}
}
