package atoms

import (
	"context"
	"testing"

	"github.com/korora-tech/dhd/pkgmanager"
)

func TestInstallPackagesIDAndDescribe(t *testing.T) {
	a := NewInstallPackages("editors.vim", []string{"vim", "vim-gtk3"}, pkgmanager.Apt)
	want := "editors.vim::install packages [vim,vim-gtk3] via apt"
	if a.ID() != want {
		t.Fatalf("ID() = %q; want %q", a.ID(), want)
	}
	if a.Describe() != "install packages [vim, vim-gtk3] via apt" {
		t.Fatalf("Describe() = %q", a.Describe())
	}
	if a.Resource() != "pkgmanager:apt" {
		t.Fatalf("Resource() = %q; want pkgmanager:apt", a.Resource())
	}
}

func TestRemovePackagesResourceMatchesManager(t *testing.T) {
	a := NewRemovePackages("editors.vim", []string{"vim"}, pkgmanager.Brew)
	if a.Resource() != "pkgmanager:brew" {
		t.Fatalf("Resource() = %q; want pkgmanager:brew", a.Resource())
	}
	_ = context.Background()
}
