// Package metrics records wiki-link rendering metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics are
// optional and never need nil checks. PrometheusRecorder forwards to a
// Prometheus registry, and WriteText dumps that registry in the text
// exposition format for one-shot CLI runs that have no scrape endpoint.
package metrics
