/*
Package observability provides tools for monitoring a scena workspace.

It includes Prometheus collectors fed by lifecycle hooks, structured logging
hooks for auditing selections, and a helper to combine several hook sets.
*/
package observability
