package atoms

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/korora-tech/dhd/errs"
)

// CreateSymlink creates Link pointing at Target. check() reports true when
// Link already exists as a symlink resolving to Target (spec.md scenario
// S4: re-running must not error or recreate an already-correct link).
type CreateSymlink struct {
	base
	Target string
	Link   string
	// Force allows execute() to remove a pre-existing symlink at Link
	// before creating the new one. Without it, execute() refuses to
	// touch an existing Link at all; a non-symlink Link is always
	// refused regardless of Force.
	Force bool
}

func NewCreateSymlink(module, target, link string, force bool) *CreateSymlink {
	return &CreateSymlink{
		base:   newBase(module, "symlink "+link+" -> "+target, nil),
		Target: target,
		Link:   link,
		Force:  force,
	}
}

func (a *CreateSymlink) Check(ctx context.Context) (bool, error) {
	info, err := os.Lstat(a.Link)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errs.Wrap(errs.ErrIO, "stat "+a.Link, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false, errs.Wrap(errs.ErrAtomExecution, a.Link+" exists and is not a symlink", nil)
	}
	existing, err := os.Readlink(a.Link)
	if err != nil {
		return false, errs.Wrap(errs.ErrIO, "readlink "+a.Link, err)
	}
	return existing == a.Target, nil
}

func (a *CreateSymlink) Execute(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(a.Link), 0o755); err != nil {
		return errs.Wrap(errs.ErrIO, "creating parent directory for "+a.Link, err)
	}
	if info, err := os.Lstat(a.Link); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			return errs.Wrap(errs.ErrAtomExecution, a.Link+" exists and is not a symlink", nil)
		}
		if !a.Force {
			return errs.Wrap(errs.ErrAtomExecution, a.Link+" already exists; force not set", nil)
		}
		if err := os.Remove(a.Link); err != nil {
			return errs.Wrap(errs.ErrIO, "removing existing symlink "+a.Link, err)
		}
	}
	if err := os.Symlink(a.Target, a.Link); err != nil {
		return errs.Wrap(errs.ErrAtomExecution, "linking "+a.Link+" -> "+a.Target, err)
	}
	return nil
}

// CreateDirectory ensures Path exists as a directory with Mode permissions.
type CreateDirectory struct {
	base
	Path string
	Mode os.FileMode
}

func NewCreateDirectory(module, path string, mode os.FileMode) *CreateDirectory {
	return &CreateDirectory{
		base: newBase(module, "directory "+path, nil),
		Path: path,
		Mode: mode,
	}
}

func (a *CreateDirectory) Check(ctx context.Context) (bool, error) {
	info, err := os.Stat(a.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errs.Wrap(errs.ErrIO, "stat "+a.Path, err)
	}
	return info.IsDir(), nil
}

func (a *CreateDirectory) Execute(ctx context.Context) error {
	mode := a.Mode
	if mode == 0 {
		mode = 0o755
	}
	if err := os.MkdirAll(a.Path, mode); err != nil {
		return errs.Wrap(errs.ErrAtomExecution, "creating directory "+a.Path, err)
	}
	return nil
}

// CopyFile copies Source to Dest, overwriting Dest whenever its contents
// differ. check() hashes both files and reports true only when their
// content matches; execute() always overwrites when Check reports false.
type CopyFile struct {
	base
	Source string
	Dest   string
	Mode   os.FileMode
}

func NewCopyFile(module, source, dest string, mode os.FileMode) *CopyFile {
	return &CopyFile{
		base:   newBase(module, "copy "+source+" -> "+dest, nil),
		Source: source,
		Dest:   dest,
		Mode:   mode,
	}
}

func (a *CopyFile) Check(ctx context.Context) (bool, error) {
	if _, err := os.Stat(a.Dest); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errs.Wrap(errs.ErrIO, "stat dest "+a.Dest, err)
	}
	srcSum, err := sha256File(a.Source)
	if err != nil {
		return false, err
	}
	dstSum, err := sha256File(a.Dest)
	if err != nil {
		return false, err
	}
	return srcSum == dstSum, nil
}

func (a *CopyFile) Execute(ctx context.Context) error {
	src, err := os.Open(a.Source)
	if err != nil {
		return errs.Wrap(errs.ErrIO, "opening source "+a.Source, err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(a.Dest), 0o755); err != nil {
		return errs.Wrap(errs.ErrIO, "creating parent directory for "+a.Dest, err)
	}
	mode := a.Mode
	if mode == 0 {
		mode = 0o644
	}
	tmp := a.Dest + ".dhd-tmp"
	dst, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return errs.Wrap(errs.ErrIO, "creating "+tmp, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(tmp)
		return errs.Wrap(errs.ErrIO, "copying "+a.Source+" -> "+a.Dest, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(tmp)
		return errs.Wrap(errs.ErrIO, "closing "+tmp, err)
	}
	if err := os.Rename(tmp, a.Dest); err != nil {
		os.Remove(tmp)
		return errs.Wrap(errs.ErrIO, "renaming "+tmp+" -> "+a.Dest, err)
	}
	return nil
}
