// Package actions lowers the declarative ActionSpec variants of spec.md
// section 4.6 into concrete atoms.Atom lists, resolving platform selectors
// and package managers along the way. Grounded on the teacher's
// Config.ToWebServer()-style pattern of turning one declarative struct into
// a concrete runtime object, generalized to N action variants.
package actions

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/korora-tech/dhd/atoms"
	"github.com/korora-tech/dhd/errs"
)

// ActionSpec is the planner contract every action variant implements.
type ActionSpec interface {
	// Plan lowers the action into atoms, given the owning module's id and
	// the directory its module file was loaded from (for resolving
	// relative source paths).
	Plan(moduleID, moduleDir string) ([]atoms.Atom, error)
	// Describe returns a short human-readable summary of the action.
	Describe() string
}

// PlanError kinds, per spec.md section 4.6.
const (
	NoPackagesForPlatform = "NoPackagesForPlatform"
	ManagerNotFound       = "ManagerNotFound"
	InvalidPath           = "InvalidPath"
	InvalidReference      = "InvalidReference"
)

func planError(kind, msg string) error {
	return errs.Wrap(errs.ErrActionPlan, kind+": "+msg, nil)
}

// expandPath resolves a leading "~" against the user's home directory and,
// for any other relative path, joins it against moduleDir.
func expandPath(path, moduleDir string) (string, error) {
	if path == "" {
		return "", planError(InvalidPath, "empty path")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		return filepath.Join(xdg.Home, strings.TrimPrefix(path, "~")), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Join(moduleDir, path), nil
}

func parentDirAtom(module, path string) *atoms.CreateDirectory {
	return atoms.NewCreateDirectory(module, filepath.Dir(path), os.FileMode(0o755))
}
