package pkgmanager

import "context"

// FlatpakProvider wraps flatpak, per spec.md section 4.3: "flatpak, snap,
// winget: manager-specific commands."
type FlatpakProvider struct{}

func (FlatpakProvider) Name() string                    { return "flatpak" }
func (FlatpakProvider) IsAvailable(context.Context) bool { return onPath("flatpak") }

func (FlatpakProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	out, err := runCmd(ctx, "flatpak", "info", name)
	return err == nil && out != "", nil
}

func (FlatpakProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "flatpak", "install", "-y", "flathub", name)
	return err
}

func (FlatpakProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "flatpak", "uninstall", "-y", name)
	return err
}

func (FlatpakProvider) Update(ctx context.Context) error {
	_, err := runCmd(ctx, "flatpak", "update", "-y")
	return err
}

func (FlatpakProvider) InstallCommand(name string) []string {
	return []string{"flatpak", "install", "-y", "flathub", name}
}

// SnapProvider wraps snap.
type SnapProvider struct{}

func (SnapProvider) Name() string                    { return "snap" }
func (SnapProvider) IsAvailable(context.Context) bool { return onPath("snap") }

func (SnapProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	out, err := runCmd(ctx, "snap", "list", name)
	return err == nil && containsFold(out, name), nil
}

func (SnapProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runElevated(ctx, "snap", "install", name)
	return err
}

func (SnapProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runElevated(ctx, "snap", "remove", name)
	return err
}

func (SnapProvider) Update(ctx context.Context) error {
	_, err := runElevated(ctx, "snap", "refresh")
	return err
}

func (SnapProvider) InstallCommand(name string) []string { return []string{"snap", "install", name} }

// WingetProvider wraps the Windows Package Manager.
type WingetProvider struct{}

func (WingetProvider) Name() string                    { return "winget" }
func (WingetProvider) IsAvailable(context.Context) bool { return onPath("winget") }

func (WingetProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	out, err := runCmd(ctx, "winget", "list", "--id", name)
	return err == nil && containsFold(out, name), nil
}

func (WingetProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "winget", "install", "-e", "--id", name)
	return err
}

func (WingetProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runCmd(ctx, "winget", "uninstall", "--id", name)
	return err
}

func (WingetProvider) Update(ctx context.Context) error {
	_, err := runCmd(ctx, "winget", "upgrade", "--all")
	return err
}

func (WingetProvider) InstallCommand(name string) []string {
	return []string{"winget", "install", "-e", "--id", name}
}
