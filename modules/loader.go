package modules

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/korora-tech/dhd/actions"
	"github.com/korora-tech/dhd/condition"
	"github.com/korora-tech/dhd/errs"
	"github.com/korora-tech/dhd/pkgmanager"
	"github.com/korora-tech/dhd/platformselect"
)

// Loader is the pluggable module-description source the registry consumes;
// spec.md section 1 treats the description language/parser as an opaque
// external collaborator behind this interface.
type Loader interface {
	// Load parses a single module file into a ModuleData.
	Load(path string) (ModuleData, error)
	// Extensions lists the file extensions (including the leading dot)
	// this loader recognizes, used by LoadFromDirectory to select files.
	Extensions() []string
}

// YAMLLoader is the bundled default Loader, reading one module per YAML
// file (grounded in the pack's dotular/nix-foundry manifest YAML loaders).
type YAMLLoader struct {
	validate *validator.Validate
}

// NewYAMLLoader constructs a YAMLLoader with struct-tag validation wired in.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{validate: validator.New()}
}

func (l *YAMLLoader) Extensions() []string { return []string{".yaml", ".yml"} }

func (l *YAMLLoader) Load(path string) (ModuleData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ModuleData{}, errs.Wrap(errs.ErrModuleLoad, "reading "+path, err)
	}
	var doc rawModule
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return ModuleData{}, errs.Wrap(errs.ErrParse, "parsing "+path, err)
	}
	v := l.validate
	if v == nil {
		v = validate
	}
	if err := v.Struct(doc); err != nil {
		return ModuleData{}, errs.Wrap(errs.ErrValidation, "validating "+path, err)
	}
	data := ModuleData{
		ID:           doc.ID,
		Name:         doc.Name,
		Description:  doc.Description,
		Dependencies: doc.Dependencies,
		Tags:         doc.Tags,
		Dir:          filepath.Dir(path),
	}
	for _, rawAction := range doc.Actions {
		spec, err := rawAction.toActionSpec()
		if err != nil {
			return ModuleData{}, errs.Wrap(errs.ErrParse, "parsing action in "+path, err)
		}
		data.Actions = append(data.Actions, spec)
	}
	return data, nil
}

var validate = validator.New()

// rawModule mirrors the YAML shape of a module file before its actions are
// converted from their "type"-discriminated raw form into concrete
// actions.ActionSpec values.
type rawModule struct {
	ID           string      `yaml:"id" validate:"required"`
	Name         string      `yaml:"name" validate:"required"`
	Description  string      `yaml:"description"`
	Dependencies []string    `yaml:"dependencies"`
	Tags         []string    `yaml:"tags"`
	Actions      []rawAction `yaml:"actions"`
}

// rawAction is the union of every field any action variant might need;
// unused fields are simply left zero. Type selects which variant to build.
type rawAction struct {
	Type string `yaml:"type" validate:"required"`

	// package install/remove
	Names     []string            `yaml:"names"`
	Manager   string              `yaml:"manager"`
	Overrides map[string][]string `yaml:"overrides"`

	// link/copy/directory
	Source string      `yaml:"source"`
	Target string      `yaml:"target"`
	Path   string       `yaml:"path"`
	Mode   uint32       `yaml:"mode"`
	Force  bool         `yaml:"force"`

	// command
	Command  string            `yaml:"command"`
	Args     []string          `yaml:"args"`
	Cwd      string            `yaml:"cwd"`
	Env      map[string]string `yaml:"env"`
	Elevated bool              `yaml:"elevated"`
	Unless   *rawCondition     `yaml:"unless"`
	Timeout  int               `yaml:"timeoutSeconds"`

	// download
	URL         string `yaml:"url"`
	Destination string `yaml:"destination"`
	Checksum    string `yaml:"checksum"`

	// systemd
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
	Scope   string `yaml:"scope"`
	Enable  bool   `yaml:"enable"`
	Start   bool   `yaml:"start"`

	// gnome
	Extensions []rawGnomeExtension `yaml:"extensions"`

	// conditional
	Condition *rawCondition `yaml:"condition"`
	Action    *rawAction    `yaml:"action"`

	// user group
	User   string   `yaml:"user"`
	Groups []string `yaml:"groups"`

	// git config
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

type rawGnomeExtension struct {
	UUID       string `yaml:"uuid"`
	BundlePath string `yaml:"bundlePath"`
}

type rawCondition struct {
	Type      string          `yaml:"type"`
	Path      string          `yaml:"path"`
	Command   string          `yaml:"command"`
	Name      string          `yaml:"name"`
	Expected  string          `yaml:"expected"`
	Condition *rawCondition   `yaml:"condition"`
	Conditions []*rawCondition `yaml:"conditions"`
}

func (r *rawCondition) toCondition() (condition.Condition, error) {
	if r == nil {
		return nil, nil
	}
	switch r.Type {
	case "fileExists":
		return condition.FileExists{Path: r.Path}, nil
	case "directoryExists":
		return condition.DirectoryExists{Path: r.Path}, nil
	case "commandSucceeds":
		return condition.CommandSucceeds{Command: r.Command}, nil
	case "envVar":
		return condition.EnvVar{Name: r.Name, Expected: r.Expected}, nil
	case "not":
		inner, err := r.Condition.toCondition()
		if err != nil {
			return nil, err
		}
		return condition.Not{Condition: inner}, nil
	case "allOf":
		conds, err := toConditions(r.Conditions)
		if err != nil {
			return nil, err
		}
		return condition.AllOf{Conditions: conds}, nil
	case "anyOf":
		conds, err := toConditions(r.Conditions)
		if err != nil {
			return nil, err
		}
		return condition.AnyOf{Conditions: conds}, nil
	default:
		return nil, errs.Wrap(errs.ErrParse, "unknown condition type "+r.Type, nil)
	}
}

func toConditions(raws []*rawCondition) ([]condition.Condition, error) {
	result := make([]condition.Condition, 0, len(raws))
	for _, r := range raws {
		c, err := r.toCondition()
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}

func parseManager(name string) pkgmanager.Manager {
	switch strings.ToLower(name) {
	case "apt":
		return pkgmanager.Apt
	case "brew":
		return pkgmanager.Brew
	case "bun":
		return pkgmanager.Bun
	case "cargo":
		return pkgmanager.Cargo
	case "dnf":
		return pkgmanager.Dnf
	case "flatpak":
		return pkgmanager.Flatpak
	case "github":
		return pkgmanager.GitHub
	case "go":
		return pkgmanager.Go
	case "npm":
		return pkgmanager.Npm
	case "pacman":
		return pkgmanager.Pacman
	case "paru":
		return pkgmanager.Paru
	case "pip":
		return pkgmanager.Pip
	case "snap":
		return pkgmanager.Snap
	case "winget":
		return pkgmanager.Winget
	case "yum":
		return pkgmanager.Yum
	case "uv":
		return pkgmanager.Uv
	default:
		return pkgmanager.Auto
	}
}

func (r rawAction) toActionSpec() (actions.ActionSpec, error) {
	switch r.Type {
	case "packageInstall":
		overrides := make(map[pkgmanager.Manager][]string, len(r.Overrides))
		for k, v := range r.Overrides {
			overrides[parseManager(k)] = v
		}
		return actions.PackageInstall{
			Names:     platformselect.Of(r.Names),
			Manager:   parseManager(r.Manager),
			Overrides: overrides,
		}, nil
	case "packageRemove":
		return actions.PackageRemove{Names: platformselect.Of(r.Names), Manager: parseManager(r.Manager)}, nil
	case "linkFile":
		return actions.LinkFile{Source: r.Source, Target: r.Target, Force: r.Force}, nil
	case "linkDirectory":
		return actions.LinkDirectory{Source: r.Source, Target: r.Target, Force: r.Force}, nil
	case "copyFile":
		return actions.CopyFile{Source: r.Source, Target: r.Target, Mode: os.FileMode(r.Mode)}, nil
	case "directory":
		return actions.Directory{Path: r.Path, Mode: os.FileMode(r.Mode)}, nil
	case "executeCommand":
		unless, err := r.Unless.toCondition()
		if err != nil {
			return nil, err
		}
		return actions.ExecuteCommand{
			Command:  r.Command,
			Args:     r.Args,
			Cwd:      r.Cwd,
			Env:      r.Env,
			Elevated: r.Elevated,
			Unless:   unless,
			Timeout:  time.Duration(r.Timeout) * time.Second,
		}, nil
	case "httpDownload":
		return actions.HttpDownload{
			URL:         r.URL,
			Destination: r.Destination,
			Checksum:    r.Checksum,
			Mode:        os.FileMode(r.Mode),
			Timeout:     time.Duration(r.Timeout) * time.Second,
		}, nil
	case "systemdSocket":
		return actions.SystemdSocket{Name: r.Name, Content: r.Content, Scope: r.Scope, Enable: r.Enable, Start: r.Start}, nil
	case "systemdService":
		return actions.SystemdService{Name: r.Name, Content: r.Content, Scope: r.Scope, Enable: r.Enable, Start: r.Start}, nil
	case "systemdManage":
		return actions.SystemdManage{Name: r.Name, Scope: r.Scope, Enable: r.Enable, Start: r.Start}, nil
	case "dconfImport":
		return actions.DconfImport{Path: r.Path, Content: r.Content}, nil
	case "installGnomeExtensions":
		exts := make([]actions.GnomeExtension, 0, len(r.Extensions))
		for _, e := range r.Extensions {
			exts = append(exts, actions.GnomeExtension{UUID: e.UUID, BundlePath: e.BundlePath})
		}
		return actions.InstallGnomeExtensions{Extensions: exts}, nil
	case "conditional":
		cond, err := r.Condition.toCondition()
		if err != nil {
			return nil, err
		}
		if r.Action == nil {
			return nil, errs.Wrap(errs.ErrParse, "conditional action missing inner action", nil)
		}
		inner, err := r.Action.toActionSpec()
		if err != nil {
			return nil, err
		}
		return actions.Conditional{Condition: cond, Inner: inner}, nil
	case "userGroup":
		return actions.UserGroup{User: r.User, Groups: r.Groups}, nil
	case "gitConfig":
		return actions.GitConfig{Key: r.Key, Value: r.Value}, nil
	default:
		return nil, errs.Wrap(errs.ErrParse, "unknown action type "+r.Type, nil)
	}
}
