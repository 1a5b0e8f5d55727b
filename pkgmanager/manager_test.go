package pkgmanager

import (
	"testing"

	"github.com/korora-tech/dhd/platform"
)

func TestDetectUbuntuDebian(t *testing.T) {
	m, err := Detect(platform.Platform{Family: platform.Linux, Distro: platform.Ubuntu})
	if err != nil || m != Apt {
		t.Fatalf("Detect(ubuntu) = %v, %v; want Apt, nil", m, err)
	}
}

func TestDetectMacWindows(t *testing.T) {
	if m, err := Detect(platform.Platform{Family: platform.MacOS}); err != nil || m != Brew {
		t.Fatalf("Detect(mac) = %v, %v; want Brew, nil", m, err)
	}
	if m, err := Detect(platform.Platform{Family: platform.Windows}); err != nil || m != Winget {
		t.Fatalf("Detect(windows) = %v, %v; want Winget, nil", m, err)
	}
}

func TestDetectFedoraPrefersDnf(t *testing.T) {
	orig := available
	defer func() { available = orig }()
	available = func(m Manager) bool { return m == Dnf || m == Yum }
	m, err := Detect(platform.Platform{Family: platform.Linux, Distro: platform.Fedora})
	if err != nil || m != Dnf {
		t.Fatalf("Detect(fedora, both present) = %v, %v; want Dnf, nil", m, err)
	}
}

func TestDetectFedoraFallsBackToYum(t *testing.T) {
	orig := available
	defer func() { available = orig }()
	available = func(m Manager) bool { return m == Yum }
	m, err := Detect(platform.Platform{Family: platform.Linux, Distro: platform.Fedora})
	if err != nil || m != Yum {
		t.Fatalf("Detect(fedora, only yum) = %v, %v; want Yum, nil", m, err)
	}
}

func TestDetectFedoraNeitherPresent(t *testing.T) {
	orig := available
	defer func() { available = orig }()
	available = func(m Manager) bool { return false }
	if _, err := Detect(platform.Platform{Family: platform.Linux, Distro: platform.Fedora}); err == nil {
		t.Fatal("Detect(fedora, neither present) should fail")
	}
}

func TestDetectArchPrefersParu(t *testing.T) {
	orig := available
	defer func() { available = orig }()
	available = func(m Manager) bool { return m == Paru || m == Pacman }
	m, err := Detect(platform.Platform{Family: platform.Linux, Distro: platform.Arch})
	if err != nil || m != Paru {
		t.Fatalf("Detect(arch) = %v, %v; want Paru, nil", m, err)
	}
}

func TestGitHubRefParsing(t *testing.T) {
	cases := []struct {
		in      string
		want    GitHubRef
		wantErr bool
	}{
		{"owner/repo", GitHubRef{Owner: "owner", Repo: "repo", Binary: "repo"}, false},
		{"owner/repo:bin", GitHubRef{Owner: "owner", Repo: "repo", Binary: "bin"}, false},
		{"owner/repo@v1.2.3", GitHubRef{Owner: "owner", Repo: "repo", Binary: "repo", Version: "v1.2.3"}, false},
		{"owner/repo:bin@v1.2.3", GitHubRef{Owner: "owner", Repo: "repo", Binary: "bin", Version: "v1.2.3"}, false},
		{"noslash", GitHubRef{}, true},
		{"a/b/c", GitHubRef{}, true},
		{"", GitHubRef{}, true},
	}
	for _, c := range cases {
		got, err := ParseGitHubRef(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseGitHubRef(%q) expected error", c.in)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Errorf("ParseGitHubRef(%q) = %+v, %v; want %+v, nil", c.in, got, err, c.want)
		}
	}
}
