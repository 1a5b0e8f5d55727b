package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/korora-tech/dhd/errs"
	"github.com/korora-tech/dhd/platform"
)

// Provider resolves a Reference to its secret value. Concrete providers
// need only handle the Kind they own; Resolver dispatches by Kind.
type Provider interface {
	// Get returns the secret value for ref.
	Get(ctx context.Context, ref Reference) (string, error)
	// Exists reports whether ref names a secret the backend can resolve,
	// without necessarily revealing its value.
	Exists(ctx context.Context, ref Reference) (bool, error)
}

// EnvironmentProvider resolves env:// references against the process
// environment.
type EnvironmentProvider struct{}

func (EnvironmentProvider) Get(_ context.Context, ref Reference) (string, error) {
	val, ok := os.LookupEnv(ref.Var)
	if !ok {
		return "", errs.Wrap(errs.ErrValidation, fmt.Sprintf("environment variable %q is not set", ref.Var), nil)
	}
	return val, nil
}

func (EnvironmentProvider) Exists(_ context.Context, ref Reference) (bool, error) {
	_, ok := os.LookupEnv(ref.Var)
	return ok, nil
}

// LiteralProvider resolves literal:// references to their embedded value.
type LiteralProvider struct{}

func (LiteralProvider) Get(_ context.Context, ref Reference) (string, error) {
	return ref.Value, nil
}

func (LiteralProvider) Exists(_ context.Context, ref Reference) (bool, error) {
	return true, nil
}

// OnePasswordProvider shells out to the `op` CLI. Account, if set, is
// passed as `--account`.
type OnePasswordProvider struct {
	Account string
	Timeout time.Duration
}

func (p OnePasswordProvider) args(ref Reference, extra ...string) []string {
	path := fmt.Sprintf("op://%s/%s/%s", ref.Vault, ref.Item, ref.Field)
	args := []string{"read", path}
	if p.Account != "" {
		args = append(args, "--account", p.Account)
	}
	return append(args, extra...)
}

func (p OnePasswordProvider) timeout() time.Duration {
	if p.Timeout <= 0 {
		return 15 * time.Second
	}
	return p.Timeout
}

func (p OnePasswordProvider) Get(ctx context.Context, ref Reference) (string, error) {
	out, err := platform.InvokeProgram(ctx, nil, p.timeout(), "op", p.args(ref)...)
	if err != nil {
		return "", errs.Wrap(errs.ErrIO, "op read failed for "+ref.Raw, err)
	}
	return strings.TrimRight(out, "\n"), nil
}

// Exists probes via `op read`; an "isn't an item" stderr is mapped to
// (false, nil) per spec.md section 4.8's documented heuristic. Any other
// failure is surfaced as an error, since it may indicate op is missing or
// unauthenticated rather than a genuinely absent item.
func (p OnePasswordProvider) Exists(ctx context.Context, ref Reference) (bool, error) {
	out, err := platform.InvokeProgram(ctx, nil, p.timeout(), "op", p.args(ref)...)
	if err == nil {
		return true, nil
	}
	if strings.Contains(strings.ToLower(out), "isn't an item") {
		return false, nil
	}
	return false, errs.Wrap(errs.ErrIO, "op read failed for "+ref.Raw, err)
}
