// Package report turns collected build results into their output forms: a
// JSON document for CI pipelines, a JUnit XML rendering for test dashboards
// and a colored console summary. No result is dropped or reordered by any of
// the renderers.
package report
