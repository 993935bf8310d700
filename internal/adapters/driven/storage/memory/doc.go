// Package memory provides in-memory implementations of the driven storage
// ports. They back tests and the --debug-data mode, where nothing is
// written to disk. All stores are safe for concurrent use.
package memory
