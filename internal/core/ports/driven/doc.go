// Package driven defines the interfaces the core depends on:
// row sources, the artifact store, the region reference lookup,
// the run history store and configuration. Adapters implement them.
package driven
