package pkgmanager

import (
	"context"
	"strings"
)

// BrewProvider wraps Homebrew, per spec.md section 4.3: "brew: no
// escalation; brew list --versions <pkg> for check."
type BrewProvider struct{}

func (BrewProvider) Name() string                    { return "brew" }
func (BrewProvider) IsAvailable(context.Context) bool { return onPath("brew") }

func (BrewProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	out, err := runCmd(ctx, "brew", "list", "--versions", name)
	return err == nil && strings.TrimSpace(out) != "", nil
}

func (BrewProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "brew", "install", name)
	return err
}

func (BrewProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "brew", "uninstall", name)
	return err
}

func (BrewProvider) Update(ctx context.Context) error {
	_, err := runCmd(ctx, "brew", "upgrade")
	return err
}

func (BrewProvider) InstallCommand(name string) []string {
	return []string{"brew", "install", name}
}
