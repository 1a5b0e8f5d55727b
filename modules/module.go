// Package modules implements the module registry and dependency resolver
// of spec.md section 4.9: load module descriptions, validate them, and
// produce a topologically ordered execution set via depth-first traversal.
package modules

import (
	"github.com/korora-tech/dhd/actions"
)

// ModuleData is the loaded, structured form of a module description,
// per spec.md section 3.
type ModuleData struct {
	ID           string `yaml:"id" validate:"required"`
	Name         string `yaml:"name" validate:"required"`
	Description  string `yaml:"description"`
	Dependencies []string `yaml:"dependencies"`
	Tags         []string `yaml:"tags"`
	Actions      []actions.ActionSpec `yaml:"-"`

	// Dir is the directory the module file was loaded from, used by the
	// planner to resolve relative paths. Not part of the serialized form.
	Dir string `yaml:"-"`
}
