// Package observability builds the process logger and the Prometheus
// collectors the junction reports to.
package observability
