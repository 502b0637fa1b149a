// Package logging provides the structured logging interface shared by the
// evaluators, the orchestration layer and the command. zerolog is the default
// backend; a standard log.Logger adapter exists for callers that already hold
// one.
package logging
