// Package ui holds the color themes shared by the command-line output and
// the lipgloss palette used to draw limb maps. Keeping them here lets the
// config usage text and the cli package agree on colors without importing
// each other.
package ui
