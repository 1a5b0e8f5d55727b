package modules

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/korora-tech/dhd/errs"
	"github.com/korora-tech/dhd/lalog"
)

func readDirSorted(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// Registry holds loaded modules keyed by id and orders them for execution.
type Registry struct {
	loader  Loader
	modules map[string]ModuleData
	logger  lalog.Logger
}

// NewRegistry builds an empty Registry using loader to parse module files.
func NewRegistry(loader Loader) *Registry {
	return &Registry{
		loader:  loader,
		modules: make(map[string]ModuleData),
		logger:  lalog.Logger{ComponentName: "registry"},
	}
}

// LoadModule loads a single module file and inserts it, keyed by id. A
// duplicate id is warned and the second load is ignored, per spec.md's
// stated invariant and SPEC_FULL.md's Open Question decision.
func (r *Registry) LoadModule(path string) error {
	data, err := r.loader.Load(path)
	if err != nil {
		return err
	}
	if _, exists := r.modules[data.ID]; exists {
		r.logger.Warning("LoadModule", data.ID, nil, "duplicate module id at %s, ignoring", path)
		return nil
	}
	r.modules[data.ID] = data
	return nil
}

// LoadFromDirectory loads every file in dir whose extension the registry's
// loader recognizes, and returns the count of modules newly loaded.
func (r *Registry) LoadFromDirectory(dir string) (int, error) {
	before := len(r.modules)
	extensions := make(map[string]bool, len(r.loader.Extensions()))
	for _, ext := range r.loader.Extensions() {
		extensions[ext] = true
	}
	entries, err := readDirSorted(dir)
	if err != nil {
		return 0, errs.Wrap(errs.ErrModuleLoad, "reading module directory "+dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !extensions[filepath.Ext(entry.Name())] {
			continue
		}
		if err := r.LoadModule(filepath.Join(dir, entry.Name())); err != nil {
			return 0, err
		}
	}
	return len(r.modules) - before, nil
}

// Get returns the module with the given id.
func (r *Registry) Get(id string) (ModuleData, bool) {
	m, ok := r.modules[id]
	return m, ok
}

// AllIDs returns every loaded module id, sorted for deterministic output.
func (r *Registry) AllIDs() []string {
	ids := make([]string, 0, len(r.modules))
	for id := range r.modules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetOrdered performs a depth-first traversal over requestedIDs: for each
// id, dependencies are emitted before the module itself, a visited set
// shared by every requested id of the call deduplicates modules shared
// across multiple chains, and a
// recursion-stack set detects cycles, per spec.md section 4.9.
func (r *Registry) GetOrdered(requestedIDs []string) ([]ModuleData, error) {
	var ordered []ModuleData
	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	var visit func(id string) error
	visit = func(id string) error {
		if visited[id] {
			return nil
		}
		if onStack[id] {
			return errs.Wrap(errs.ErrDependencyResolution, "cycle detected at module "+id, nil)
		}
		module, ok := r.modules[id]
		if !ok {
			return errs.Wrap(errs.ErrModuleLoad, "module not found: "+id, nil)
		}
		onStack[id] = true
		for _, dep := range module.Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		onStack[id] = false
		visited[id] = true
		ordered = append(ordered, module)
		return nil
	}

	for _, id := range requestedIDs {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}
