package atoms

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSystemdUnitCheckContentMatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dhd-test.service")
	content := "[Unit]\nDescription=test\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	a := NewSystemdUnit("services.test", path, content, "user")
	ok, err := a.Check(context.Background())
	if err != nil || !ok {
		t.Fatalf("Check = %v, %v; want true, nil", ok, err)
	}
}

func TestSystemdUnitCheckContentMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dhd-test.service")
	if err := os.WriteFile(path, []byte("old content"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := NewSystemdUnit("services.test", path, "new content", "user")
	ok, err := a.Check(context.Background())
	if err != nil || ok {
		t.Fatalf("Check = %v, %v; want false, nil", ok, err)
	}
}

func TestSystemdUnitCheckMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.service")
	a := NewSystemdUnit("services.test", path, "content", "user")
	ok, err := a.Check(context.Background())
	if err != nil || ok {
		t.Fatalf("Check = %v, %v; want false, nil", ok, err)
	}
}

func TestSystemdUnitResourceScopedBySystemdScope(t *testing.T) {
	user := NewSystemdUnit("services.test", "/x", "c", "user")
	system := NewSystemdUnit("services.test", "/x", "c", "system")
	if user.Resource() == system.Resource() {
		t.Fatalf("user and system scope must not share a resource key, got %q for both", user.Resource())
	}
}
