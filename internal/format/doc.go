// Package format holds the text helpers shared by the presentation layer:
// durations, ETAs, progress aggregation, progress bars, and digit grouping.
package format
