// Package pkgmanager provides a uniform capability over the package
// managers named in spec.md section 4.3, and the platform-based
// auto-detection rule of section 4.3's "Auto-detection rule".
//
// Grounded on _examples/HouzuoGuo-laitos/daemon/maintenance/software.go's
// getSystemPackageManager, generalized from "pick the one manager laitos
// uses for system maintenance" to "uniform capability over N managers,
// selectable per action".
package pkgmanager

import (
	"context"

	"github.com/korora-tech/dhd/errs"
	"github.com/korora-tech/dhd/platform"
)

// Manager identifies a package manager, per spec.md's PackageManager type.
type Manager int

const (
	Auto Manager = iota
	Apt
	Brew
	Bun
	Cargo
	Dnf
	Flatpak
	GitHub
	Go
	Npm
	Pacman
	Paru
	Pip
	Snap
	Winget
	Yum
	Uv
)

func (m Manager) String() string {
	switch m {
	case Apt:
		return "apt"
	case Brew:
		return "brew"
	case Bun:
		return "bun"
	case Cargo:
		return "cargo"
	case Dnf:
		return "dnf"
	case Flatpak:
		return "flatpak"
	case GitHub:
		return "github"
	case Go:
		return "go"
	case Npm:
		return "npm"
	case Pacman:
		return "pacman"
	case Paru:
		return "paru"
	case Pip:
		return "pip"
	case Snap:
		return "snap"
	case Winget:
		return "winget"
	case Yum:
		return "yum"
	case Uv:
		return "uv"
	default:
		return "auto"
	}
}

// Provider is the uniform capability each concrete package manager
// implements, per spec.md section 4.3.
type Provider interface {
	Name() string
	IsAvailable(ctx context.Context) bool
	IsPackageInstalled(ctx context.Context, name string) (bool, error)
	InstallPackage(ctx context.Context, name string) error
	UninstallPackage(ctx context.Context, name string) error
	Update(ctx context.Context) error
	InstallCommand(name string) []string
}

// providerFactories is the registry of constructors, keyed by Manager. It
// is a var (not a map literal returned from a function) so tests can stub
// entries.
var providerFactories = map[Manager]func() Provider{
	Apt:     func() Provider { return AptProvider{} },
	Dnf:     func() Provider { return DnfProvider{} },
	Yum:     func() Provider { return YumProvider{} },
	Pacman:  func() Provider { return PacmanProvider{} },
	Paru:    func() Provider { return ParuProvider{} },
	Brew:    func() Provider { return BrewProvider{} },
	Npm:     func() Provider { return NpmProvider{} },
	Bun:     func() Provider { return BunProvider{} },
	Cargo:   func() Provider { return CargoProvider{} },
	Go:      func() Provider { return GoProvider{} },
	Pip:     func() Provider { return PipProvider{} },
	Uv:      func() Provider { return UvProvider{} },
	Flatpak: func() Provider { return FlatpakProvider{} },
	Snap:    func() Provider { return SnapProvider{} },
	Winget:  func() Provider { return WingetProvider{} },
	GitHub:  func() Provider { return GitHubProvider{} },
}

// For returns the Provider implementing m. Auto must be resolved with
// Detect first; calling For(Auto) is a programmer error and returns an
// error rather than panicking.
func For(m Manager) (Provider, error) {
	factory, ok := providerFactories[m]
	if !ok {
		return nil, errs.Wrap(errs.ErrPackageManager, "no provider registered for "+m.String(), nil)
	}
	return factory(), nil
}

// Detect implements spec.md's auto-detection rule table for Manager Auto.
func Detect(p platform.Platform) (Manager, error) {
	switch p.Family {
	case platform.Linux:
		switch p.Distro {
		case platform.Ubuntu, platform.Debian:
			return Apt, nil
		case platform.Fedora:
			if available(Dnf) {
				return Dnf, nil
			}
			if available(Yum) {
				return Yum, nil
			}
			return 0, errs.Wrap(errs.ErrPackageManager, "dnf/yum not found", nil)
		case platform.Arch:
			if available(Paru) {
				return Paru, nil
			}
			if available(Pacman) {
				return Pacman, nil
			}
			return 0, errs.Wrap(errs.ErrPackageManager, "paru/pacman not found", nil)
		default:
			return 0, errs.Wrap(errs.ErrPackageManager, "no suitable manager", nil)
		}
	case platform.MacOS:
		return Brew, nil
	case platform.Windows:
		return Winget, nil
	default:
		return 0, errs.Wrap(errs.ErrPackageManager, "no suitable manager", nil)
	}
}

// available is overridable by tests, matching the probing used by each
// provider's IsAvailable.
var available = func(m Manager) bool {
	p, err := For(m)
	if err != nil {
		return false
	}
	return p.IsAvailable(context.Background())
}

// DetectCurrent resolves Auto against the process's current platform.
func DetectCurrent() (Manager, error) {
	return Detect(platform.Current())
}

// ResolveForCurrentPlatform resolves m to a concrete Manager: if m is Auto,
// it is replaced by the auto-detected manager; otherwise m is returned
// unchanged.
func ResolveForCurrentPlatform(m Manager) (Manager, error) {
	if m != Auto {
		return m, nil
	}
	return DetectCurrent()
}
