package actions

import (
	"os"

	"github.com/korora-tech/dhd/atoms"
)

// CopyFile copies Source to Target, creating Target's parent directory
// first.
type CopyFile struct {
	Source string
	Target string
	Mode   os.FileMode
}

func (a CopyFile) Describe() string { return "copy " + a.Source + " -> " + a.Target }

func (a CopyFile) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	src, err := expandPath(a.Source, moduleDir)
	if err != nil {
		return nil, err
	}
	dst, err := expandPath(a.Target, moduleDir)
	if err != nil {
		return nil, err
	}
	dir := parentDirAtom(moduleID, dst)
	copy := atoms.NewCopyFile(moduleID, src, dst, a.Mode)
	return []atoms.Atom{dir, &dependsOn{Atom: copy, deps: []string{dir.ID()}}}, nil
}

// Directory ensures Path exists.
type Directory struct {
	Path string
	Mode os.FileMode
}

func (a Directory) Describe() string { return "directory " + a.Path }

func (a Directory) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	path, err := expandPath(a.Path, moduleDir)
	if err != nil {
		return nil, err
	}
	return []atoms.Atom{atoms.NewCreateDirectory(moduleID, path, a.Mode)}, nil
}
