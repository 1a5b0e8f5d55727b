package atoms

import (
	"context"
	"strings"

	"github.com/korora-tech/dhd/errs"
	"github.com/korora-tech/dhd/pkgmanager"
)

// InstallPackages installs every package in Packages that is not already
// installed, via the resolved Manager. check() is true only when every
// package reports installed, per spec.md section 4.4.
type InstallPackages struct {
	base
	Packages []string
	Manager  pkgmanager.Manager
}

// NewInstallPackages builds the atom; manager must already be resolved
// (Auto replaced by the planner before atom construction).
func NewInstallPackages(module string, packages []string, manager pkgmanager.Manager) *InstallPackages {
	return &InstallPackages{
		base:     newBase(module, "install packages ["+strings.Join(packages, ",")+"] via "+manager.String(), nil),
		Packages: packages,
		Manager:  manager,
	}
}

func (a *InstallPackages) Describe() string {
	return "install packages [" + strings.Join(a.Packages, ", ") + "] via " + a.Manager.String()
}

func (a *InstallPackages) Resource() string { return "pkgmanager:" + a.Manager.String() }

func (a *InstallPackages) Check(ctx context.Context) (bool, error) {
	provider, err := pkgmanager.For(a.Manager)
	if err != nil {
		return false, err
	}
	for _, pkg := range a.Packages {
		installed, err := provider.IsPackageInstalled(ctx, pkg)
		if err != nil {
			return false, errs.Wrap(errs.ErrPackageManager, "checking "+pkg, err)
		}
		if !installed {
			return false, nil
		}
	}
	return true, nil
}

func (a *InstallPackages) Execute(ctx context.Context) error {
	provider, err := pkgmanager.For(a.Manager)
	if err != nil {
		return err
	}
	for _, pkg := range a.Packages {
		installed, err := provider.IsPackageInstalled(ctx, pkg)
		if err != nil {
			return errs.Wrap(errs.ErrPackageManager, "checking "+pkg, err)
		}
		if installed {
			continue
		}
		if err := provider.InstallPackage(ctx, pkg); err != nil {
			return errs.Wrap(errs.ErrAtomExecution, "installing "+pkg+" via "+a.Manager.String(), err)
		}
	}
	return nil
}

// RemovePackages is the inverse of InstallPackages: check() is true when
// every package is already absent.
type RemovePackages struct {
	base
	Packages []string
	Manager  pkgmanager.Manager
}

func NewRemovePackages(module string, packages []string, manager pkgmanager.Manager) *RemovePackages {
	return &RemovePackages{
		base:     newBase(module, "remove packages ["+strings.Join(packages, ",")+"] via "+manager.String(), nil),
		Packages: packages,
		Manager:  manager,
	}
}

func (a *RemovePackages) Describe() string {
	return "remove packages [" + strings.Join(a.Packages, ", ") + "] via " + a.Manager.String()
}

func (a *RemovePackages) Resource() string { return "pkgmanager:" + a.Manager.String() }

func (a *RemovePackages) Check(ctx context.Context) (bool, error) {
	provider, err := pkgmanager.For(a.Manager)
	if err != nil {
		return false, err
	}
	for _, pkg := range a.Packages {
		installed, err := provider.IsPackageInstalled(ctx, pkg)
		if err != nil {
			return false, errs.Wrap(errs.ErrPackageManager, "checking "+pkg, err)
		}
		if installed {
			return false, nil
		}
	}
	return true, nil
}

func (a *RemovePackages) Execute(ctx context.Context) error {
	provider, err := pkgmanager.For(a.Manager)
	if err != nil {
		return err
	}
	for _, pkg := range a.Packages {
		installed, err := provider.IsPackageInstalled(ctx, pkg)
		if err != nil {
			return errs.Wrap(errs.ErrPackageManager, "checking "+pkg, err)
		}
		if !installed {
			continue
		}
		if err := provider.UninstallPackage(ctx, pkg); err != nil {
			return errs.Wrap(errs.ErrAtomExecution, "removing "+pkg+" via "+a.Manager.String(), err)
		}
	}
	return nil
}
