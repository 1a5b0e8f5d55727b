package actions

import (
	"github.com/korora-tech/dhd/atoms"
	"github.com/korora-tech/dhd/pkgmanager"
	"github.com/korora-tech/dhd/platform"
	"github.com/korora-tech/dhd/platformselect"
)

// PackageInstall installs a platform-selected set of package names via a
// package manager, explicit or auto-detected. Overrides lets a module give
// a manager-specific package name when the logical package differs across
// managers (folding in the original implementation's PackageInstallV2,
// per SPEC_FULL.md section 4).
type PackageInstall struct {
	Names     platformselect.Select[[]string]
	Manager   pkgmanager.Manager
	Overrides map[pkgmanager.Manager][]string
}

func (a PackageInstall) Describe() string { return "install packages" }

func (a PackageInstall) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	names, ok := platformselect.Resolve(a.Names, platform.Current())
	if !ok || len(names) == 0 {
		return nil, nil
	}
	manager, err := pkgmanager.ResolveForCurrentPlatform(a.Manager)
	if err != nil {
		return nil, planError(ManagerNotFound, err.Error())
	}
	if override, ok := a.Overrides[manager]; ok && len(override) > 0 {
		names = override
	}
	return []atoms.Atom{atoms.NewInstallPackages(moduleID, names, manager)}, nil
}

// PackageRemove is the inverse of PackageInstall.
type PackageRemove struct {
	Names   platformselect.Select[[]string]
	Manager pkgmanager.Manager
}

func (a PackageRemove) Describe() string { return "remove packages" }

func (a PackageRemove) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	names, ok := platformselect.Resolve(a.Names, platform.Current())
	if !ok || len(names) == 0 {
		return nil, nil
	}
	manager, err := pkgmanager.ResolveForCurrentPlatform(a.Manager)
	if err != nil {
		return nil, planError(ManagerNotFound, err.Error())
	}
	return []atoms.Atom{atoms.NewRemovePackages(moduleID, names, manager)}, nil
}
