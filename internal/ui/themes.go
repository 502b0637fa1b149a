package ui

import (
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape sequences, one per color role.
type Theme struct {
	// Name identifies the theme for SetTheme.
	Name string
	// Primary highlights engine names and flags.
	Primary string
	// Secondary is used for metadata such as sizes and limb counts.
	Secondary string
	// Success marks consistent results.
	Success string
	// Warning marks durations and hints.
	Warning string
	// Error marks failures.
	Error string
	// Info marks operands and operation names.
	Info string
	// Bold starts bold text.
	Bold string
	// Underline starts underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme uses darker tones for light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme emits no escape sequences at all.
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// LimbPalette colors the cells of a rendered limb map.
type LimbPalette struct {
	// One is the foreground of set bits.
	One lipgloss.TerminalColor
	// Zero is the foreground of clear bits.
	Zero lipgloss.TerminalColor
	// Border frames each limb.
	Border lipgloss.TerminalColor
	// Label colors the limb index above each cell.
	Label lipgloss.TerminalColor
}

var (
	// DarkLimbPalette pairs with DarkTheme and LightTheme.
	DarkLimbPalette = LimbPalette{
		One:    lipgloss.Color("#9ece6a"),
		Zero:   lipgloss.Color("#565f89"),
		Border: lipgloss.Color("#7aa2f7"),
		Label:  lipgloss.Color("#bb9af7"),
	}

	// NoColorLimbPalette leaves every cell in the terminal's default colors.
	NoColorLimbPalette = LimbPalette{
		One:    lipgloss.NoColor{},
		Zero:   lipgloss.NoColor{},
		Border: lipgloss.NoColor{},
		Label:  lipgloss.NoColor{},
	}
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme with the given name and reports whether the
// name was known. Unknown names select DarkTheme.
func SetTheme(name string) bool {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	t, ok := themes[name]
	if !ok {
		t = DarkTheme
	}
	currentTheme = t
	return ok
}

// ThemeNames lists the names SetTheme accepts, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InitTheme picks the startup theme. Colors are off when noColor is set or
// when the NO_COLOR environment variable exists (https://no-color.org/).
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	if _, exists := os.LookupEnv("NO_COLOR"); noColor || exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

// CurrentLimbPalette returns the limb map palette matching the active theme.
func CurrentLimbPalette() LimbPalette {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorLimbPalette
	}
	return DarkLimbPalette
}
