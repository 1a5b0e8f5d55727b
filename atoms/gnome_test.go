package atoms

import "testing"

func TestSplitLines(t *testing.T) {
	got := splitLines("a\nb\r\nc")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitLines = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("splitLines[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestSplitFields(t *testing.T) {
	got := splitFields("wheel docker  video\n")
	want := []string{"wheel", "docker", "video"}
	if len(got) != len(want) {
		t.Fatalf("splitFields = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("splitFields[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestDconfImportNeverIdempotent(t *testing.T) {
	a := NewDconfImport("gnome.settings", "/org/gnome/desktop/", "[/]\nkey=true")
	ok, err := a.Check(nil)
	if err != nil || ok {
		t.Fatalf("Check = %v, %v; want false, nil", ok, err)
	}
}
