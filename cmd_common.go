package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/korora-tech/dhd/modules"
)

var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFail = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleSkip = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleBold = lipgloss.NewStyle().Bold(true)
)

// plainOutput disables styling when stdout is not a terminal, matching the
// pack's convention of degrading to plain text for piped/CI output.
func plainOutput() bool {
	return !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func render(style lipgloss.Style, s string) string {
	if plainOutput() {
		return s
	}
	return style.Render(s)
}

func defaultModulesDir() string {
	return filepath.Join(xdg.ConfigHome, "dhd", "modules")
}

func addModulesFlag(cmd *cobra.Command) *string {
	return cmd.Flags().String("modules", defaultModulesDir(), "directory to load module files from")
}

// loadRegistry loads every module file from dir into a fresh registry using
// the bundled YAML loader.
func loadRegistry(dir string) (*modules.Registry, error) {
	reg := modules.NewRegistry(modules.NewYAMLLoader())
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("module directory %s: %w", dir, err)
	}
	if _, err := reg.LoadFromDirectory(dir); err != nil {
		return nil, err
	}
	return reg, nil
}

// allModuleIDs returns explicit ids if given, otherwise every loaded
// module's id in sorted order (Registry.AllIDs); plan/apply fall back to
// the full list only when the user passes none.
func allModuleIDs(reg *modules.Registry, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	return reg.AllIDs()
}
