package pkgmanager

import "context"

// AptProvider wraps Debian/Ubuntu's apt, per spec.md section 4.3: "apt:
// is_available = which apt; install via apt install -y <pkg> under
// escalation; installed check parses dpkg -s."
type AptProvider struct{}

func (AptProvider) Name() string { return "apt" }

func (AptProvider) IsAvailable(context.Context) bool { return onPath("apt") }

func (AptProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	out, err := runCmd(ctx, "dpkg", "-s", name)
	if err != nil {
		return false, nil
	}
	return containsFold(out, "Status: install ok installed"), nil
}

func (AptProvider) InstallPackage(ctx context.Context, name string) error {
	_, err := runElevated(ctx, "apt", "install", "-y", name)
	return err
}

func (AptProvider) UninstallPackage(ctx context.Context, name string) error {
	_, err := runElevated(ctx, "apt", "remove", "-y", name)
	return err
}

func (AptProvider) Update(ctx context.Context) error {
	_, err := runElevated(ctx, "apt", "update")
	return err
}

func (AptProvider) InstallCommand(name string) []string {
	return []string{"apt", "install", "-y", name}
}
