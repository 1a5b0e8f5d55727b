// Package platform identifies the host operating system and distribution,
// invokes external programs with a time limit, and locates a privilege
// escalation helper. It is the Go-native home of the teacher's
// (HouzuoGuo/laitos) platform package, generalized from "laitos' own OS
// quirks" to "detect the target of a declarative configuration atom".
package platform

import (
	"bufio"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/korora-tech/dhd/lalog"
)

var logger = lalog.Logger{ComponentName: "platform"}

// Family identifies the broad OS family a Platform belongs to.
type Family int

const (
	Unknown Family = iota
	Linux
	MacOS
	Windows
)

func (f Family) String() string {
	switch f {
	case Linux:
		return "linux"
	case MacOS:
		return "macos"
	case Windows:
		return "windows"
	default:
		return "unknown"
	}
}

// Distro identifies a Linux distribution. It is meaningless outside Family
// == Linux.
type Distro int

const (
	DistroNone Distro = iota
	Ubuntu
	Debian
	Fedora
	Arch
	NixOS
	OtherDistro
)

func (d Distro) String() string {
	switch d {
	case Ubuntu:
		return "ubuntu"
	case Debian:
		return "debian"
	case Fedora:
		return "fedora"
	case Arch:
		return "arch"
	case NixOS:
		return "nixos"
	case OtherDistro:
		return "other"
	default:
		return "none"
	}
}

// Platform is the tagged value described by spec.md section 3.
type Platform struct {
	Family Family
	Distro Distro
}

var (
	detectOnce sync.Once
	detected   Platform
)

// Current returns the memoized platform of the running process. Detection
// failures resolve to Family Unknown rather than returning an error, per
// spec.md 4.1: "Fails to Unknown rather than erroring."
func Current() Platform {
	detectOnce.Do(func() {
		detected = detect()
	})
	return detected
}

// resetForTest clears the memoized platform so tests can exercise detect()
// repeatedly. Not exported: production code must never re-detect mid-run.
func resetForTest() {
	detectOnce = sync.Once{}
	detected = Platform{}
}

func detect() Platform {
	switch runtime.GOOS {
	case "windows":
		return Platform{Family: Windows}
	case "darwin":
		return Platform{Family: MacOS}
	case "linux":
		distro, err := detectLinuxDistro("/etc/os-release")
		if err != nil {
			logger.Warning("detect", "", err, "failed to read /etc/os-release, distro detection degraded to \"other\"")
			distro = OtherDistro
		}
		return Platform{Family: Linux, Distro: distro}
	default:
		return Platform{Family: Unknown}
	}
}

// detectLinuxDistro parses /etc/os-release, preferring ID and falling back
// to the ID_LIKE family list, per spec.md 4.1.
func detectLinuxDistro(osReleasePath string) (Distro, error) {
	f, err := os.Open(osReleasePath)
	if err != nil {
		return OtherDistro, err
	}
	defer f.Close()

	fields := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kv := strings.SplitN(line, "=", 2)
		if len(kv) != 2 {
			continue
		}
		fields[kv[0]] = strings.Trim(kv[1], `"'`)
	}

	if distro, ok := matchDistroID(fields["ID"]); ok {
		return distro, nil
	}
	for _, like := range strings.Fields(fields["ID_LIKE"]) {
		if distro, ok := matchDistroID(like); ok {
			return distro, nil
		}
	}
	return OtherDistro, nil
}

func matchDistroID(id string) (Distro, bool) {
	switch strings.ToLower(id) {
	case "ubuntu":
		return Ubuntu, true
	case "debian":
		return Debian, true
	case "fedora":
		return Fedora, true
	case "arch", "archlinux":
		return Arch, true
	case "nixos":
		return NixOS, true
	case "":
		return DistroNone, false
	default:
		return DistroNone, false
	}
}
