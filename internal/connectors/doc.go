// Package connectors provides row source implementations for the
// tabular data sources the pipeline can ingest from.
package connectors
