package platformselect

import (
	"reflect"
	"testing"

	"github.com/korora-tech/dhd/platform"
)

func TestResolveScenarioS2(t *testing.T) {
	vim := []string{"vim"}
	macvim := []string{"macvim"}
	sel := Select[[]string]{
		Linux: &LinuxSelect[[]string]{All: &vim},
		Mac:   &macvim,
	}

	ubuntu := platform.Platform{Family: platform.Linux, Distro: platform.Ubuntu}
	got, ok := Resolve(sel, ubuntu)
	if !ok || !reflect.DeepEqual(got, vim) {
		t.Fatalf("Resolve(linux/ubuntu) = %v, %v; want %v, true", got, ok, vim)
	}

	windows := platform.Platform{Family: platform.Windows}
	_, ok = Resolve(sel, windows)
	if ok {
		t.Fatalf("Resolve(windows) should be absent")
	}
}

func TestResolveDistroOtherCoversOnlyOtherDistro(t *testing.T) {
	val := "pkg"
	sel := Select[string]{Linux: &LinuxSelect[string]{Other: &val}}
	got, ok := Resolve(sel, platform.Platform{Family: platform.Linux, Distro: platform.OtherDistro})
	if !ok || got != val {
		t.Fatalf("Resolve(other distro with only Other set) = %v, %v; want %v, true", got, ok, val)
	}
	got, ok = Resolve(sel, platform.Platform{Family: platform.Linux, Distro: platform.Fedora})
	if ok {
		t.Fatalf("Resolve(fedora with only Other set) = %v, %v; want absent", got, ok)
	}
}

func TestResolveAllAppliesEverywhere(t *testing.T) {
	sel := Of("anywhere")
	for _, p := range []platform.Platform{
		{Family: platform.Linux, Distro: platform.Arch},
		{Family: platform.MacOS},
		{Family: platform.Windows},
	} {
		got, ok := Resolve(sel, p)
		if !ok || got != "anywhere" {
			t.Errorf("Resolve(%v) = %v, %v; want \"anywhere\", true", p, got, ok)
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	val := 42
	sel := Select[int]{Mac: &val}
	p := platform.Platform{Family: platform.MacOS}
	a, okA := Resolve(sel, p)
	b, okB := Resolve(sel, p)
	if a != b || okA != okB {
		t.Fatal("Resolve is not deterministic")
	}
}
