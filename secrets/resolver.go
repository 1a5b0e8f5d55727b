package secrets

import (
	"context"
	"fmt"
	"sync"

	"github.com/korora-tech/dhd/errs"
)

// Resolver resolves secret references through the provider matching their
// Kind, caching resolved values keyed by the literal reference string for
// the lifetime of one run (spec.md section 4.8/9).
type Resolver struct {
	OnePassword Provider
	Environment Provider
	Literal     Provider

	mu    sync.Mutex
	cache map[string]string
}

// NewResolver builds a Resolver with the standard Environment/Literal
// providers and the given 1Password backend.
func NewResolver(onePassword Provider) *Resolver {
	return &Resolver{
		OnePassword: onePassword,
		Environment: EnvironmentProvider{},
		Literal:     LiteralProvider{},
		cache:       map[string]string{},
	}
}

func (r *Resolver) providerFor(kind Kind) (Provider, error) {
	switch kind {
	case KindOnePassword:
		if r.OnePassword == nil {
			return nil, errs.Wrap(errs.ErrValidation, "no OnePassword provider configured", nil)
		}
		return r.OnePassword, nil
	case KindEnvironment:
		return r.Environment, nil
	case KindLiteral:
		return r.Literal, nil
	default:
		return nil, errs.Wrap(errs.ErrValidation, fmt.Sprintf("unknown secret kind %d", kind), nil)
	}
}

// Resolve parses and resolves a secret reference string, caching by the raw
// string for subsequent calls within the same Resolver.
func (r *Resolver) Resolve(ctx context.Context, raw string) (string, error) {
	r.mu.Lock()
	if v, ok := r.cache[raw]; ok {
		r.mu.Unlock()
		return v, nil
	}
	r.mu.Unlock()

	ref, err := Parse(raw)
	if err != nil {
		return "", err
	}
	provider, err := r.providerFor(ref.Kind)
	if err != nil {
		return "", err
	}
	value, err := provider.Get(ctx, ref)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.cache[raw] = value
	r.mu.Unlock()
	return value, nil
}

// Exists reports whether the given reference resolves to a value, without
// necessarily populating the cache.
func (r *Resolver) Exists(ctx context.Context, raw string) (bool, error) {
	ref, err := Parse(raw)
	if err != nil {
		return false, err
	}
	provider, err := r.providerFor(ref.Kind)
	if err != nil {
		return false, err
	}
	return provider.Exists(ctx, ref)
}
