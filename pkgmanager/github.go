package pkgmanager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/korora-tech/dhd/errs"
)

// GitHubRef is a parsed "owner/repo[:binary][@version]" package reference,
// per spec.md section 4.3.
type GitHubRef struct {
	Owner, Repo, Binary, Version string
}

// ParseGitHubRef parses the GitHub provider's reference grammar. Empty
// input, or an owner/repo part that does not have exactly one slash with
// non-empty text on both sides, fails with an InvalidReference error.
func ParseGitHubRef(s string) (GitHubRef, error) {
	if s == "" {
		return GitHubRef{}, errs.Wrap(errs.ErrValidation, "InvalidReference: empty GitHub package reference", nil)
	}
	version := ""
	rest := s
	if idx := strings.LastIndex(s, "@"); idx >= 0 {
		rest, version = s[:idx], s[idx+1:]
	}
	binary := ""
	if idx := strings.Index(rest, ":"); idx >= 0 {
		rest, binary = rest[:idx], rest[idx+1:]
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return GitHubRef{}, errs.Wrap(errs.ErrValidation, fmt.Sprintf("InvalidReference: %q must be owner/repo[:binary][@version]", s), nil)
	}
	if binary == "" {
		binary = parts[1]
	}
	return GitHubRef{Owner: parts[0], Repo: parts[1], Binary: binary, Version: version}, nil
}

// UserBinDir is the directory GitHub-provider binaries are placed into.
func UserBinDir() string {
	return filepath.Join(xdg.Home, ".local", "bin")
}

// GitHubProvider installs prebuilt release binaries from GitHub. Name is
// always the "owner/repo[:binary][@version]" reference string; spec.md's
// install_package semantics for this provider download, extract, and place
// the binary rather than delegating to a system package manager.
type GitHubProvider struct{}

func (GitHubProvider) Name() string { return "github" }

func (GitHubProvider) IsAvailable(context.Context) bool {
	return onPath("curl") && (onPath("tar") || onPath("unzip"))
}

func (GitHubProvider) IsPackageInstalled(ctx context.Context, name string) (bool, error) {
	ref, err := ParseGitHubRef(name)
	if err != nil {
		return false, err
	}
	_, statErr := os.Stat(filepath.Join(UserBinDir(), ref.Binary))
	return statErr == nil, nil
}

// releaseURL builds the GitHub "latest" or tagged release download URL for
// the asset; the actual asset-name matching is platform/architecture
// specific and is resolved by the caller supplying assetName.
func releaseURL(ref GitHubRef, assetName string) string {
	tag := "latest/download"
	if ref.Version != "" {
		tag = "download/" + ref.Version
	}
	return fmt.Sprintf("https://github.com/%s/%s/releases/%s/%s", ref.Owner, ref.Repo, tag, assetName)
}

func (GitHubProvider) InstallPackage(ctx context.Context, name string) error {
	ref, err := ParseGitHubRef(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(UserBinDir(), 0o755); err != nil {
		return errs.Wrap(errs.ErrIO, "failed to create user bin directory", err)
	}
	assetName := fmt.Sprintf("%s.tar.gz", ref.Repo)
	url := releaseURL(ref, assetName)
	tmpArchive := filepath.Join(os.TempDir(), "dhd-github-"+ref.Repo+"-"+ref.Binary+".tar.gz")
	if _, err := runCmd(ctx, "curl", "-fsSL", "-o", tmpArchive, url); err != nil {
		return errs.Wrap(errs.ErrIO, "failed to download release asset from "+url, err)
	}
	defer os.Remove(tmpArchive)
	extractDir := filepath.Join(os.TempDir(), "dhd-github-extract-"+ref.Repo)
	_ = os.RemoveAll(extractDir)
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return errs.Wrap(errs.ErrIO, "failed to create extraction directory", err)
	}
	if _, err := runCmd(ctx, "tar", "-xzf", tmpArchive, "-C", extractDir); err != nil {
		return errs.Wrap(errs.ErrIO, "failed to extract release archive", err)
	}
	found, err := findBinary(extractDir, ref.Binary)
	if err != nil {
		return err
	}
	dest := filepath.Join(UserBinDir(), ref.Binary)
	if _, err := runCmd(ctx, "install", "-m", "0755", found, dest); err != nil {
		return errs.Wrap(errs.ErrIO, "failed to install extracted binary", err)
	}
	return nil
}

func findBinary(dir, binary string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || found != "" {
			return err
		}
		if !d.IsDir() && d.Name() == binary {
			found = path
		}
		return nil
	})
	if err != nil {
		return "", errs.Wrap(errs.ErrIO, "failed to search extracted archive for "+binary, err)
	}
	if found == "" {
		return "", errs.Wrap(errs.ErrPackageManager, "extracted archive did not contain a file named "+binary, nil)
	}
	return found, nil
}

func (GitHubProvider) UninstallPackage(ctx context.Context, name string) error {
	ref, err := ParseGitHubRef(name)
	if err != nil {
		return err
	}
	return os.Remove(filepath.Join(UserBinDir(), ref.Binary))
}

func (GitHubProvider) Update(ctx context.Context) error { return nil }

func (GitHubProvider) InstallCommand(name string) []string {
	return []string{"curl", "-fsSL", name}
}
