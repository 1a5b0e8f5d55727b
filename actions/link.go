package actions

import (
	"github.com/korora-tech/dhd/atoms"
)

// LinkFile symlinks Source (relative to the module directory unless
// absolute or "~"-prefixed) to Target.
type LinkFile struct {
	Source string
	Target string
	Force  bool
}

func (a LinkFile) Describe() string { return "link " + a.Target + " -> " + a.Source }

func (a LinkFile) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	return planLink(moduleID, moduleDir, a.Source, a.Target, a.Force)
}

// LinkDirectory symlinks an entire directory; it shares CreateSymlink's
// semantics since a directory symlink has no special case in this engine.
type LinkDirectory struct {
	Source string
	Target string
	Force  bool
}

func (a LinkDirectory) Describe() string { return "link directory " + a.Target + " -> " + a.Source }

func (a LinkDirectory) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	return planLink(moduleID, moduleDir, a.Source, a.Target, a.Force)
}

func planLink(moduleID, moduleDir, source, target string, force bool) ([]atoms.Atom, error) {
	src, err := expandPath(source, moduleDir)
	if err != nil {
		return nil, err
	}
	dst, err := expandPath(target, moduleDir)
	if err != nil {
		return nil, err
	}
	dir := parentDirAtom(moduleID, dst)
	link := atoms.NewCreateSymlink(moduleID, src, dst, force)
	return []atoms.Atom{dir, &dependsOn{Atom: link, deps: []string{dir.ID()}}}, nil
}

// dependsOn wraps an Atom to override its Dependencies(), used by the
// planner to wire a parent-directory atom ahead of the atom that needs it
// without modifying the atom types themselves.
type dependsOn struct {
	atoms.Atom
	deps []string
}

func (d *dependsOn) Dependencies() []string { return d.deps }

// Resource forwards to the wrapped atom's Resource, if it has one, so
// wrapping an atom for an extra dependency edge never hides it from the
// executor's resource-serialization mutex map.
func (d *dependsOn) Resource() string {
	if ra, ok := d.Atom.(atoms.ResourceAware); ok {
		return ra.Resource()
	}
	return ""
}
