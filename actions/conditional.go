package actions

import (
	"context"

	"github.com/korora-tech/dhd/atoms"
	"github.com/korora-tech/dhd/condition"
)

// Conditional gates Inner's atoms on Condition, re-evaluated at execute
// time (the Open Question decision recorded in SPEC_FULL.md section 10):
// every atom Inner's Plan produces is wrapped so its Check() short-circuits
// to "already satisfied" whenever Condition is false, and its Execute()
// is a no-op in that case.
type Conditional struct {
	Condition condition.Condition
	Inner     ActionSpec
}

func (a Conditional) Describe() string {
	return "conditional (" + a.Condition.Describe() + "): " + a.Inner.Describe()
}

func (a Conditional) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	inner, err := a.Inner.Plan(moduleID, moduleDir)
	if err != nil {
		return nil, err
	}
	wrapped := make([]atoms.Atom, len(inner))
	for i, atom := range inner {
		wrapped[i] = &conditionalAtom{Atom: atom, condition: a.Condition}
	}
	return wrapped, nil
}

// conditionalAtom wraps an atom so it is skipped entirely whenever its
// guard condition evaluates false.
type conditionalAtom struct {
	atoms.Atom
	condition condition.Condition
}

func (c *conditionalAtom) Check(ctx context.Context) (bool, error) {
	ok, err := c.condition.Evaluate(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return c.Atom.Check(ctx)
}

func (c *conditionalAtom) Execute(ctx context.Context) error {
	ok, err := c.condition.Evaluate(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return c.Atom.Execute(ctx)
}

func (c *conditionalAtom) Resource() string {
	if ra, ok := c.Atom.(atoms.ResourceAware); ok {
		return ra.Resource()
	}
	return ""
}
