package modules

import "testing"

// fakeLoader lets tests insert ModuleData directly without touching disk.
type fakeLoader struct{ byPath map[string]ModuleData }

func (f *fakeLoader) Load(path string) (ModuleData, error) { return f.byPath[path], nil }
func (f *fakeLoader) Extensions() []string                  { return []string{".yaml"} }

func newTestRegistry(mods ...ModuleData) *Registry {
	r := NewRegistry(&fakeLoader{})
	for _, m := range mods {
		r.modules[m.ID] = m
	}
	return r
}

func TestGetOrderedDependencyOrder(t *testing.T) {
	r := newTestRegistry(
		ModuleData{ID: "A"},
		ModuleData{ID: "B", Dependencies: []string{"A"}},
		ModuleData{ID: "C", Dependencies: []string{"B"}},
	)

	got, err := r.GetOrdered([]string{"C"})
	if err != nil {
		t.Fatalf("GetOrdered([C]) error = %v", err)
	}
	assertIDOrder(t, got, "A", "B", "C")

	got, err = r.GetOrdered([]string{"B", "A"})
	if err != nil {
		t.Fatalf("GetOrdered([B,A]) error = %v", err)
	}
	assertIDOrder(t, got, "A", "B")
}

func TestGetOrderedDeduplicatesSharedDependency(t *testing.T) {
	r := newTestRegistry(
		ModuleData{ID: "base"},
		ModuleData{ID: "left", Dependencies: []string{"base"}},
		ModuleData{ID: "right", Dependencies: []string{"base"}},
		ModuleData{ID: "top", Dependencies: []string{"left", "right"}},
	)
	got, err := r.GetOrdered([]string{"top"})
	if err != nil {
		t.Fatalf("GetOrdered error = %v", err)
	}
	assertIDOrder(t, got, "base", "left", "right", "top")
}

func TestGetOrderedUnknownDependency(t *testing.T) {
	r := newTestRegistry(ModuleData{ID: "A", Dependencies: []string{"missing"}})
	if _, err := r.GetOrdered([]string{"A"}); err == nil {
		t.Fatal("GetOrdered should fail for an unknown dependency")
	}
}

func TestGetOrderedCycle(t *testing.T) {
	r := newTestRegistry(
		ModuleData{ID: "A", Dependencies: []string{"B"}},
		ModuleData{ID: "B", Dependencies: []string{"A"}},
	)
	if _, err := r.GetOrdered([]string{"A"}); err == nil {
		t.Fatal("GetOrdered should fail for a cyclic dependency graph")
	}
}

func TestLoadModuleDuplicateIDIgnoresSecond(t *testing.T) {
	loader := &fakeLoader{byPath: map[string]ModuleData{
		"first.yaml":  {ID: "dup", Name: "first"},
		"second.yaml": {ID: "dup", Name: "second"},
	}}
	r := NewRegistry(loader)
	if err := r.LoadModule("first.yaml"); err != nil {
		t.Fatalf("LoadModule(first) error = %v", err)
	}
	if err := r.LoadModule("second.yaml"); err != nil {
		t.Fatalf("LoadModule(second) error = %v", err)
	}
	m, ok := r.Get("dup")
	if !ok || m.Name != "first" {
		t.Fatalf("Get(dup) = %+v, %v; want first-loaded module to win", m, ok)
	}
}

func assertIDOrder(t *testing.T, got []ModuleData, wantIDs ...string) {
	t.Helper()
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d modules; want %d (%v)", len(got), len(wantIDs), wantIDs)
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Fatalf("order[%d] = %q; want %q (full: %v)", i, got[i].ID, want, idsOf(got))
		}
	}
}

func idsOf(mods []ModuleData) []string {
	ids := make([]string, len(mods))
	for i, m := range mods {
		ids[i] = m.ID
	}
	return ids
}
