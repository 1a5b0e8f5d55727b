// Package secrets resolves SecretReference URIs (op://, env://, literal://)
// against pluggable SecretProvider backends, caching results for the
// lifetime of one run. Grounded on
// _examples/original_source/src/secrets/onepassword.rs for the 1Password
// shell-out shape.
package secrets

import (
	"fmt"
	"strings"

	"github.com/korora-tech/dhd/errs"
)

// Kind identifies which backend a SecretReference targets.
type Kind int

const (
	KindOnePassword Kind = iota
	KindEnvironment
	KindLiteral
)

// Reference is a parsed secret URI, per spec.md section 3/6.
type Reference struct {
	Kind Kind
	// Raw is the original string this reference was parsed from, used as
	// the resolver's cache key and to satisfy the parse/round-trip
	// property in spec.md section 8 (invariant 4).
	Raw string
	// Vault, Item, Field are populated for KindOnePassword.
	Vault, Item, Field string
	// Var is populated for KindEnvironment.
	Var string
	// Value is populated for KindLiteral.
	Value string
}

const (
	onePasswordPrefix = "op://"
	environmentPrefix = "env://"
	literalPrefix     = "literal://"
)

// Parse dispatches a secret reference string by URI prefix. Anything that
// does not match one of the three known prefixes, or a op:// reference that
// does not have exactly three slash-separated segments, fails with
// errs.ErrValidation wrapping "InvalidReference" semantics from spec.md.
func Parse(s string) (Reference, error) {
	switch {
	case strings.HasPrefix(s, onePasswordPrefix):
		payload := strings.TrimPrefix(s, onePasswordPrefix)
		parts := strings.Split(payload, "/")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return Reference{}, errs.Wrap(errs.ErrValidation, fmt.Sprintf("InvalidReference: %q must be op://vault/item/field", s), nil)
		}
		return Reference{Kind: KindOnePassword, Raw: s, Vault: parts[0], Item: parts[1], Field: parts[2]}, nil
	case strings.HasPrefix(s, environmentPrefix):
		payload := strings.TrimPrefix(s, environmentPrefix)
		if payload == "" {
			return Reference{}, errs.Wrap(errs.ErrValidation, fmt.Sprintf("InvalidReference: %q is missing a variable name", s), nil)
		}
		return Reference{Kind: KindEnvironment, Raw: s, Var: payload}, nil
	case strings.HasPrefix(s, literalPrefix):
		return Reference{Kind: KindLiteral, Raw: s, Value: strings.TrimPrefix(s, literalPrefix)}, nil
	default:
		return Reference{}, errs.Wrap(errs.ErrValidation, fmt.Sprintf("InvalidReference: %q has no recognised prefix (op://, env://, literal://)", s), nil)
	}
}

// String returns the original reference text, satisfying the round-trip
// property: Parse(s).String() == s.
func (r Reference) String() string {
	return r.Raw
}
