package ui

// Color accessors read the active theme on every call so a theme change is
// visible immediately.

// ColorReset ends any color or style.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed marks failures.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen marks successes.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow marks durations and hints.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue highlights engine names.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta marks operations and operands.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan marks metadata such as sizes.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold starts bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline starts underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }
