package atoms

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCreateSymlinkIdempotent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	if err := os.WriteFile(target, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	a := NewCreateSymlink("dotfiles.vim", target, link, false)
	ctx := context.Background()

	ok, err := a.Check(ctx)
	if err != nil || ok {
		t.Fatalf("Check before create = %v, %v; want false, nil", ok, err)
	}
	if err := a.Execute(ctx); err != nil {
		t.Fatalf("Execute = %v", err)
	}

	// Second check() reports true and execute is not called again, per
	// spec scenario S4 — the executor consults Check before deciding
	// whether to run Execute at all.
	ok, err = a.Check(ctx)
	if err != nil || !ok {
		t.Fatalf("Check after create = %v, %v; want true, nil", ok, err)
	}
	resolved, err := os.Readlink(link)
	if err != nil || resolved != target {
		t.Fatalf("Readlink = %q, %v; want %q, nil", resolved, err, target)
	}
}

func TestCreateSymlinkRejectsNonSymlinkAtPath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	os.WriteFile(target, []byte("hi"), 0o644)
	link := filepath.Join(dir, "link")
	os.WriteFile(link, []byte("not a link"), 0o644)

	a := NewCreateSymlink("dotfiles.vim", target, link, true)
	if _, err := a.Check(context.Background()); err == nil {
		t.Fatal("Check should fail when link path is a regular file")
	}
}

func TestCreateSymlinkExecuteWithoutForceRefusesExistingLink(t *testing.T) {
	dir := t.TempDir()
	oldTarget := filepath.Join(dir, "old.txt")
	newTarget := filepath.Join(dir, "new.txt")
	os.WriteFile(oldTarget, []byte("old"), 0o644)
	os.WriteFile(newTarget, []byte("new"), 0o644)
	link := filepath.Join(dir, "link")
	if err := os.Symlink(oldTarget, link); err != nil {
		t.Fatal(err)
	}

	a := NewCreateSymlink("dotfiles.vim", newTarget, link, false)
	if err := a.Execute(context.Background()); err == nil {
		t.Fatal("Execute without force should refuse to replace an existing link")
	}
	resolved, err := os.Readlink(link)
	if err != nil || resolved != oldTarget {
		t.Fatalf("link target changed despite force=false: %q, %v", resolved, err)
	}
}

func TestCreateSymlinkExecuteWithForceReplacesExistingLink(t *testing.T) {
	dir := t.TempDir()
	oldTarget := filepath.Join(dir, "old.txt")
	newTarget := filepath.Join(dir, "new.txt")
	os.WriteFile(oldTarget, []byte("old"), 0o644)
	os.WriteFile(newTarget, []byte("new"), 0o644)
	link := filepath.Join(dir, "link")
	if err := os.Symlink(oldTarget, link); err != nil {
		t.Fatal(err)
	}

	a := NewCreateSymlink("dotfiles.vim", newTarget, link, true)
	if err := a.Execute(context.Background()); err != nil {
		t.Fatalf("Execute with force = %v; want nil", err)
	}
	resolved, err := os.Readlink(link)
	if err != nil || resolved != newTarget {
		t.Fatalf("Readlink = %q, %v; want %q, nil", resolved, err, newTarget)
	}
}

func TestCreateDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "child")
	a := NewCreateDirectory("dotfiles.dirs", path, 0o755)
	ctx := context.Background()

	ok, err := a.Check(ctx)
	if err != nil || ok {
		t.Fatalf("Check before create = %v, %v; want false, nil", ok, err)
	}
	if err := a.Execute(ctx); err != nil {
		t.Fatalf("Execute = %v", err)
	}
	ok, err = a.Check(ctx)
	if err != nil || !ok {
		t.Fatalf("Check after create = %v, %v; want true, nil", ok, err)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "out", "dst.txt")
	if err := os.WriteFile(src, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := NewCopyFile("dotfiles.conf", src, dst, 0o644)
	ctx := context.Background()

	ok, err := a.Check(ctx)
	if err != nil || ok {
		t.Fatalf("Check before copy = %v, %v; want false, nil", ok, err)
	}
	if err := a.Execute(ctx); err != nil {
		t.Fatalf("Execute = %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "content" {
		t.Fatalf("ReadFile(dst) = %q, %v; want %q, nil", got, err, "content")
	}
	ok, err = a.Check(ctx)
	if err != nil || !ok {
		t.Fatalf("Check after copy = %v, %v; want true, nil", ok, err)
	}
}

func TestCopyFileDivergentContentSameSizeNewerMtimeIsNotSkipped(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	if err := os.WriteFile(src, []byte("aaaaaaa"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("bbbbbbb"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Give dst a strictly newer mtime than src, so a size+mtime check
	// would wrongly report "already copied" despite differing content.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(dst, future, future); err != nil {
		t.Fatal(err)
	}

	a := NewCopyFile("dotfiles.conf", src, dst, 0o644)
	ok, err := a.Check(context.Background())
	if err != nil {
		t.Fatalf("Check = %v", err)
	}
	if ok {
		t.Fatal("Check = true; want false for same-size, different-content files")
	}
}
