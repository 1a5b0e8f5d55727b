package pkgmanager

import "context"

// DnfProvider wraps Fedora's dnf, per spec.md section 4.3: "dnf/yum: same
// shape [as apt]; rpm -q for installed check."
type DnfProvider struct{}

func (DnfProvider) Name() string                    { return "dnf" }
func (DnfProvider) IsAvailable(context.Context) bool { return onPath("dnf") }

func (DnfProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	_, err := runCmd(ctx, "rpm", "-q", name)
	return err == nil, nil
}

func (DnfProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runElevated(ctx, "dnf", "install", "-y", name)
	return err
}

func (DnfProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runElevated(ctx, "dnf", "remove", "-y", name)
	return err
}

func (DnfProvider) Update(ctx context.Context) error {
	_, err := runElevated(ctx, "dnf", "upgrade", "-y")
	return err
}

func (DnfProvider) InstallCommand(name string) []string {
	return []string{"dnf", "install", "-y", name}
}

// YumProvider wraps RHEL/CentOS's yum, the fallback when dnf is absent.
type YumProvider struct{}

func (YumProvider) Name() string                    { return "yum" }
func (YumProvider) IsAvailable(context.Context) bool { return onPath("yum") }

func (YumProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	_, err := runCmd(ctx, "rpm", "-q", name)
	return err == nil, nil
}

func (YumProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runElevated(ctx, "yum", "install", "-y", name)
	return err
}

func (YumProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runElevated(ctx, "yum", "remove", "-y", name)
	return err
}

func (YumProvider) Update(ctx context.Context) error {
	_, err := runElevated(ctx, "yum", "update", "-y")
	return err
}

func (YumProvider) InstallCommand(name string) []string {
	return []string{"yum", "install", "-y", name}
}
