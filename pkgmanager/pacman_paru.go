package pkgmanager

import "context"

// PacmanProvider wraps Arch's pacman, per spec.md section 4.3: "pacman/paru:
// pacman -Qi for check; install with -S --noconfirm (pacman needs
// escalation; paru does not)."
type PacmanProvider struct{}

func (PacmanProvider) Name() string                    { return "pacman" }
func (PacmanProvider) IsAvailable(context.Context) bool { return onPath("pacman") }

func (PacmanProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	_, err := runCmd(ctx, "pacman", "-Qi", name)
	return err == nil, nil
}

func (PacmanProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runElevated(ctx, "pacman", "-S", "--noconfirm", name)
	return err
}

func (PacmanProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runElevated(ctx, "pacman", "-R", "--noconfirm", name)
	return err
}

func (PacmanProvider) Update(ctx context.Context) error {
	_, err := runElevated(ctx, "pacman", "-Syu", "--noconfirm")
	return err
}

func (PacmanProvider) InstallCommand(name string) []string {
	return []string{"pacman", "-S", "--noconfirm", name}
}

// ParuProvider wraps the paru AUR helper. Unlike pacman, paru runs as the
// invoking user and escalates internally only when it needs to, so dhd
// never prepends an escalator of its own.
type ParuProvider struct{}

func (ParuProvider) Name() string                    { return "paru" }
func (ParuProvider) IsAvailable(context.Context) bool { return onPath("paru") }

func (ParuProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	_, err := runCmd(ctx, "pacman", "-Qi", name)
	return err == nil, nil
}

func (ParuProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "paru", "-S", "--noconfirm", name)
	return err
}

func (ParuProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "paru", "-R", "--noconfirm", name)
	return err
}

func (ParuProvider) Update(ctx context.Context) error {
	_, err := runCmd(ctx, "paru", "-Syu", "--noconfirm")
	return err
}

func (ParuProvider) InstallCommand(name string) []string {
	return []string{"paru", "-S", "--noconfirm", name}
}
