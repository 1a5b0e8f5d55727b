package actions

import (
	"github.com/korora-tech/dhd/atoms"
)

// DconfImport loads a dconf dump (Content) into the dconf database under
// the dconf directory Path (e.g. "/org/gnome/desktop/"); Path is passed
// through as given.
type DconfImport struct {
	Path    string
	Content string
}

func (a DconfImport) Describe() string { return "dconf import " + a.Path }

func (a DconfImport) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	return []atoms.Atom{atoms.NewDconfImport(moduleID, a.Path, a.Content)}, nil
}

// GnomeExtension is one entry of InstallGnomeExtensions.
type GnomeExtension struct {
	UUID       string
	BundlePath string
}

// InstallGnomeExtensions installs and enables each listed extension.
type InstallGnomeExtensions struct {
	Extensions []GnomeExtension
}

func (a InstallGnomeExtensions) Describe() string { return "install gnome extensions" }

func (a InstallGnomeExtensions) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	result := make([]atoms.Atom, 0, len(a.Extensions))
	for _, ext := range a.Extensions {
		bundlePath := ext.BundlePath
		if bundlePath != "" {
			expanded, err := expandPath(bundlePath, moduleDir)
			if err != nil {
				return nil, err
			}
			bundlePath = expanded
		}
		result = append(result, atoms.NewGnomeExtensionInstall(moduleID, ext.UUID, bundlePath))
	}
	return result, nil
}
