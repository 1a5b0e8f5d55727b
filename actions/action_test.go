package actions

import (
	"testing"

	"github.com/korora-tech/dhd/atoms"
	"github.com/korora-tech/dhd/pkgmanager"
	"github.com/korora-tech/dhd/platformselect"
)

func TestPackageInstallEmptySelectorProducesNoAtoms(t *testing.T) {
	a := PackageInstall{Names: platformselect.Select[[]string]{}, Manager: pkgmanager.Apt}
	got, err := a.Plan("editors.vim", "/modules/editors")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Plan() = %v; want no atoms when selector has no branch for current platform", got)
	}
}

func TestPackageInstallExplicitManagerEmitsOneAtom(t *testing.T) {
	a := PackageInstall{Names: platformselect.Of([]string{"vim"}), Manager: pkgmanager.Apt}
	got, err := a.Plan("editors.vim", "/modules/editors")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Plan() = %d atoms; want 1", len(got))
	}
}

func TestLinkFileDependsOnParentDirectory(t *testing.T) {
	a := LinkFile{Source: "vimrc", Target: "/home/user/.vimrc"}
	got, err := a.Plan("editors.vim", "/modules/editors")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Plan() = %d atoms; want 2 (directory, symlink)", len(got))
	}
	dir, link := got[0], got[1]
	deps := link.Dependencies()
	if len(deps) != 1 || deps[0] != dir.ID() {
		t.Fatalf("link.Dependencies() = %v; want [%q]", deps, dir.ID())
	}
}

func TestDirectoryInvalidPath(t *testing.T) {
	a := Directory{Path: ""}
	if _, err := a.Plan("editors.vim", "/modules/editors"); err == nil {
		t.Fatal("Plan() should fail for empty path")
	}
}

func TestExecuteCommandPlanJoinsArgs(t *testing.T) {
	a := ExecuteCommand{Command: "echo", Args: []string{"a", "b"}}
	got, err := a.Plan("shell.profile", "/modules/shell")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Plan() = %d atoms; want 1", len(got))
	}
	cmd, ok := got[0].(*atoms.RunCommand)
	if !ok || cmd.Command != "echo a b" {
		t.Fatalf("Plan()[0] = %#v; want RunCommand with Command %q", got[0], "echo a b")
	}
}
