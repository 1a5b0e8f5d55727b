// Package platformselect implements the generic PlatformSelect[T] resolver
// described in spec.md section 3/4.5: a value that is either a single T
// applied to all platforms, or a per-family (and, on Linux, per-distro)
// mapping, resolved against the currently running platform.
package platformselect

import "github.com/korora-tech/dhd/platform"

// LinuxSelect is either a single T applied to every distro, or a per-distro
// mapping. Exactly one of All or the per-distro fields is meaningful at a
// time: if All is non-nil it takes precedence.
type LinuxSelect[T any] struct {
	All    *T
	Ubuntu *T
	Debian *T
	Fedora *T
	Arch   *T
	NixOS  *T
	Other  *T
}

// resolve returns the branch matching distro, or nil if absent.
func (l LinuxSelect[T]) resolve(distro platform.Distro) *T {
	if l.All != nil {
		return l.All
	}
	switch distro {
	case platform.Ubuntu:
		return l.Ubuntu
	case platform.Debian:
		return l.Debian
	case platform.Fedora:
		return l.Fedora
	case platform.Arch:
		return l.Arch
	case platform.NixOS:
		return l.NixOS
	default:
		return l.Other
	}
}

// Select is either a single T applied to every platform, or a per-family
// mapping (with Linux further split by distro via LinuxSelect).
type Select[T any] struct {
	All     *T
	Linux   *LinuxSelect[T]
	Mac     *T
	Windows *T
}

// Of builds a Select that applies value on every platform.
func Of[T any](value T) Select[T] {
	return Select[T]{All: &value}
}

// Resolve returns the branch matching p, or (zero, false) if no branch
// covers p. Resolution is pure and deterministic, per spec.md invariant 3.
func Resolve[T any](sel Select[T], p platform.Platform) (T, bool) {
	if sel.All != nil {
		return *sel.All, true
	}
	switch p.Family {
	case platform.Linux:
		if sel.Linux == nil {
			var zero T
			return zero, false
		}
		if v := sel.Linux.resolve(p.Distro); v != nil {
			return *v, true
		}
	case platform.MacOS:
		if sel.Mac != nil {
			return *sel.Mac, true
		}
	case platform.Windows:
		if sel.Windows != nil {
			return *sel.Windows, true
		}
	}
	var zero T
	return zero, false
}

// ResolveCurrent resolves sel against the process's current platform.
func ResolveCurrent[T any](sel Select[T]) (T, bool) {
	return Resolve(sel, platform.Current())
}
