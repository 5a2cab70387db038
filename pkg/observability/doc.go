/*
Package observability provides tools for monitoring the oracle.

It turns generation lifecycle hooks into Prometheus metrics and structured log
records, and combines several hook sets into one.
*/
package observability
