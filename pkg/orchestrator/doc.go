// Package orchestrator wires the contract → form definition → option loader
// → flow controller pipeline, providing dependency injection friendly helpers
// for consumers that prefer a single entry point.
package orchestrator
