// Package monitoring records request timings, samples host and runtime
// usage and raises alerts when the configured thresholds are crossed. It
// also exposes the same request stream as Prometheus collectors.
package monitoring
