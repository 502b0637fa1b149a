// Package orchestration runs one request on several evaluators at once and
// compares their answers. It talks to the presentation layer only through
// the ProgressReporter, ResultPresenter, and ErrorHandler interfaces.
package orchestration
