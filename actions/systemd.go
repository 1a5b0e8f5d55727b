package actions

import (
	"path/filepath"

	"github.com/korora-tech/dhd/atoms"
)

func systemdUnitPath(name, scope, suffix string) string {
	if scope == "user" {
		return filepath.Join("~", ".config", "systemd", "user", name+suffix)
	}
	return filepath.Join("/etc", "systemd", "system", name+suffix)
}

// SystemdSocket writes a .socket unit and, if Enable/Start are set,
// manages it.
type SystemdSocket struct {
	Name    string
	Content string
	Scope   string
	Enable  bool
	Start   bool
}

func (a SystemdSocket) Describe() string { return "systemd socket " + a.Name }

func (a SystemdSocket) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	return planSystemdUnit(moduleID, moduleDir, a.Name, ".socket", a.Content, a.Scope, a.Enable, a.Start)
}

// SystemdService writes a .service unit and, if Enable/Start are set,
// manages it.
type SystemdService struct {
	Name    string
	Content string
	Scope   string
	Enable  bool
	Start   bool
}

func (a SystemdService) Describe() string { return "systemd service " + a.Name }

func (a SystemdService) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	return planSystemdUnit(moduleID, moduleDir, a.Name, ".service", a.Content, a.Scope, a.Enable, a.Start)
}

func planSystemdUnit(moduleID, moduleDir, name, suffix, content, scope string, enable, start bool) ([]atoms.Atom, error) {
	path, err := expandPath(systemdUnitPath(name, scope, suffix), moduleDir)
	if err != nil {
		return nil, err
	}
	unit := atoms.NewSystemdUnit(moduleID, path, content, scope)
	result := []atoms.Atom{unit}
	if enable || start {
		manage := atoms.NewSystemdManage(moduleID, name+suffix, scope, enable, start)
		result = append(result, &dependsOn{Atom: manage, deps: []string{unit.ID()}})
	}
	return result, nil
}

// SystemdManage enables/disables and starts/stops an existing unit without
// writing its file.
type SystemdManage struct {
	Name   string
	Scope  string
	Enable bool
	Start  bool
}

func (a SystemdManage) Describe() string { return "systemd manage " + a.Name }

func (a SystemdManage) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	return []atoms.Atom{atoms.NewSystemdManage(moduleID, a.Name, a.Scope, a.Enable, a.Start)}, nil
}
