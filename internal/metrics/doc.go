// Package metrics holds the Prometheus collectors recorded for every
// evaluation, a text exporter for the -metrics dump, and a runtime memory
// sampler used by the details view.
package metrics
