package atoms

import (
	"context"
	"time"

	"github.com/korora-tech/dhd/errs"
	"github.com/korora-tech/dhd/platform"
)

const gnomeTimeout = 30 * time.Second

// DconfImport loads Content into the dconf database at Path via `dconf
// load`. Per DESIGN.md's Open Question decision, dconf offers no reliable
// read-back comparable to what was loaded, so check() always reports false:
// this atom is never idempotent and runs on every apply.
type DconfImport struct {
	base
	Path    string
	Content string
}

func NewDconfImport(module, path, content string) *DconfImport {
	return &DconfImport{
		base:    newBase(module, "dconf load "+path, nil),
		Path:    path,
		Content: content,
	}
}

func (a *DconfImport) Check(ctx context.Context) (bool, error) { return false, nil }

func (a *DconfImport) Execute(ctx context.Context) error {
	shellCmd := "printf '%s' " + shellQuote(a.Content) + " | dconf load " + shellQuote(a.Path)
	if _, err := platform.InvokeProgram(ctx, nil, gnomeTimeout, "/bin/sh", "-c", shellCmd); err != nil {
		return errs.Wrap(errs.ErrAtomExecution, "dconf load "+a.Path, err)
	}
	return nil
}

// GnomeExtensionInstall installs a GNOME Shell extension by UUID via
// `gnome-extensions install` and enables it. check() inspects
// `gnome-extensions list` for the UUID.
type GnomeExtensionInstall struct {
	base
	UUID       string
	BundlePath string
}

func NewGnomeExtensionInstall(module, uuid, bundlePath string) *GnomeExtensionInstall {
	return &GnomeExtensionInstall{
		base:       newBase(module, "gnome extension "+uuid, nil),
		UUID:       uuid,
		BundlePath: bundlePath,
	}
}

func (a *GnomeExtensionInstall) Check(ctx context.Context) (bool, error) {
	out, err := platform.InvokeProgram(ctx, nil, gnomeTimeout, "gnome-extensions", "list", "--enabled")
	if err != nil {
		return false, errs.Wrap(errs.ErrAtomExecution, "gnome-extensions list", err)
	}
	for _, line := range splitLines(out) {
		if line == a.UUID {
			return true, nil
		}
	}
	return false, nil
}

func (a *GnomeExtensionInstall) Execute(ctx context.Context) error {
	if _, err := platform.InvokeProgram(ctx, nil, gnomeTimeout, "gnome-extensions", "install", "--force", a.BundlePath); err != nil {
		return errs.Wrap(errs.ErrAtomExecution, "gnome-extensions install "+a.BundlePath, err)
	}
	if _, err := platform.InvokeProgram(ctx, nil, gnomeTimeout, "gnome-extensions", "enable", a.UUID); err != nil {
		return errs.Wrap(errs.ErrAtomExecution, "gnome-extensions enable "+a.UUID, err)
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, trimCR(s[start:i]))
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, trimCR(s[start:]))
	}
	return lines
}

func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}

// UserInGroup adds User to Group via `usermod -aG`, supplementing spec.md
// with the user/group management original_source/ provisions but the
// distilled spec omitted. check() inspects `id -Gn`.
type UserInGroup struct {
	base
	User  string
	Group string
}

func NewUserInGroup(module, user, group string) *UserInGroup {
	return &UserInGroup{
		base:  newBase(module, "user "+user+" in group "+group, nil),
		User:  user,
		Group: group,
	}
}

func (a *UserInGroup) Check(ctx context.Context) (bool, error) {
	out, err := platform.InvokeProgram(ctx, nil, gnomeTimeout, "id", "-Gn", a.User)
	if err != nil {
		return false, errs.Wrap(errs.ErrAtomExecution, "id -Gn "+a.User, err)
	}
	for _, group := range splitFields(out) {
		if group == a.Group {
			return true, nil
		}
	}
	return false, nil
}

func (a *UserInGroup) Execute(ctx context.Context) error {
	if _, err := platform.InvokeElevated(ctx, nil, gnomeTimeout, "usermod", "-aG", a.Group, a.User); err != nil {
		return errs.Wrap(errs.ErrAtomExecution, "usermod -aG "+a.Group+" "+a.User, err)
	}
	return nil
}

func splitFields(s string) []string {
	var fields []string
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ' ' && s[i] != '\n' && s[i] != '\t' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			fields = append(fields, s[start:i])
			start = -1
		}
	}
	return fields
}
