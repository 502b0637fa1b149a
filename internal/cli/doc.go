// Package cli renders limbcalc progress and results in the terminal,
// generates shell completion scripts, and hosts the interactive session.
package cli
