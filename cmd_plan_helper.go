package main

import (
	"github.com/korora-tech/dhd/atoms"
	"github.com/korora-tech/dhd/modules"
)

// planModules lowers every action of every ordered module into atoms,
// matching spec.md's data flow: "for each module, for each action, plan".
func planModules(ordered []modules.ModuleData) ([]atoms.Atom, error) {
	var all []atoms.Atom
	for _, m := range ordered {
		for _, action := range m.Actions {
			planned, err := action.Plan(m.ID, m.Dir)
			if err != nil {
				return nil, err
			}
			all = append(all, planned...)
		}
	}
	return all, nil
}
