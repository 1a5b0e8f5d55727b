package pkgmanager

import "context"

// The managers in this file are all user-scoped installers with no
// privilege escalation, per spec.md section 4.3: "npm/bun/cargo/go/pip/uv:
// user-scoped installs, no escalation; parse list/ls output."

// NpmProvider wraps npm's global package installs.
type NpmProvider struct{}

func (NpmProvider) Name() string                    { return "npm" }
func (NpmProvider) IsAvailable(context.Context) bool { return onPath("npm") }

func (NpmProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	out, err := runCmd(ctx, "npm", "list", "-g", "--depth=0", name)
	return err == nil && containsFold(out, name), nil
}

func (NpmProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "npm", "install", "-g", name)
	return err
}

func (NpmProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "npm", "uninstall", "-g", name)
	return err
}

func (NpmProvider) Update(ctx context.Context) error {
	_, err := runCmd(ctx, "npm", "update", "-g")
	return err
}

func (NpmProvider) InstallCommand(name string) []string { return []string{"npm", "install", "-g", name} }

// BunProvider wraps bun's global package installs.
type BunProvider struct{}

func (BunProvider) Name() string                    { return "bun" }
func (BunProvider) IsAvailable(context.Context) bool { return onPath("bun") }

func (BunProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	out, err := runCmd(ctx, "bun", "pm", "ls", "-g")
	return err == nil && containsFold(out, name), nil
}

func (BunProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "bun", "add", "-g", name)
	return err
}

func (BunProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "bun", "remove", "-g", name)
	return err
}

func (BunProvider) Update(ctx context.Context) error {
	_, err := runCmd(ctx, "bun", "upgrade")
	return err
}

func (BunProvider) InstallCommand(name string) []string { return []string{"bun", "add", "-g", name} }

// CargoProvider wraps `cargo install`.
type CargoProvider struct{}

func (CargoProvider) Name() string                    { return "cargo" }
func (CargoProvider) IsAvailable(context.Context) bool { return onPath("cargo") }

func (CargoProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	out, err := runCmd(ctx, "cargo", "install", "--list")
	return err == nil && containsFold(out, name), nil
}

func (CargoProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "cargo", "install", name)
	return err
}

func (CargoProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "cargo", "uninstall", name)
	return err
}

func (CargoProvider) Update(ctx context.Context) error {
	_, err := runCmd(ctx, "cargo", "install-update", "-a")
	return err
}

func (CargoProvider) InstallCommand(name string) []string { return []string{"cargo", "install", name} }

// GoProvider wraps `go install <module>@latest`.
type GoProvider struct{}

func (GoProvider) Name() string                    { return "go" }
func (GoProvider) IsAvailable(context.Context) bool { return onPath("go") }

func (GoProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	// There is no reliable "is this go-installed binary present" probe
	// beyond checking GOBIN/PATH for the tool's expected base name, which
	// the planner does not know. The planner treats go-managed packages
	// as always needing a (idempotent) reinstall attempt; `go install` is
	// itself idempotent when the module is already at the requested
	// version.
	return false, nil
}

func (GoProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "go", "install", name)
	return err
}

func (GoProvider) UninstallPackage(ctx context.Context, name string) error {
	return nil
}

func (GoProvider) Update(ctx context.Context) error { return nil }

func (GoProvider) InstallCommand(name string) []string { return []string{"go", "install", name} }

// PipProvider wraps `pip install --user`.
type PipProvider struct{}

func (PipProvider) Name() string                    { return "pip" }
func (PipProvider) IsAvailable(context.Context) bool { return onPath("pip") || onPath("pip3") }

func (PipProvider) binary() string {
	if onPath("pip3") {
		return "pip3"
	}
	return "pip"
}

func (PipProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	out, err := runCmd(ctx, PipProvider{}.binary(), "show", name)
	return err == nil && containsFold(out, "Name: "+name), nil
}

func (PipProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, PipProvider{}.binary(), "install", "--user", name)
	return err
}

func (PipProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, PipProvider{}.binary(), "uninstall", "-y", name)
	return err
}

func (PipProvider) Update(ctx context.Context) error { return nil }

func (PipProvider) InstallCommand(name string) []string {
	return []string{PipProvider{}.binary(), "install", "--user", name}
}

// UvProvider wraps `uv tool install`.
type UvProvider struct{}

func (UvProvider) Name() string                    { return "uv" }
func (UvProvider) IsAvailable(context.Context) bool { return onPath("uv") }

func (UvProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	out, err := runCmd(ctx, "uv", "tool", "list")
	return err == nil && containsFold(out, name), nil
}

func (UvProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "uv", "tool", "install", name)
	return err
}

func (UvProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "uv", "tool", "uninstall", name)
	return err
}

func (UvProvider) Update(ctx context.Context) error {
	_, err := runCmd(ctx, "uv", "tool", "upgrade", "--all")
	return err
}

func (UvProvider) InstallCommand(name string) []string { return []string{"uv", "tool", "install", name} }
