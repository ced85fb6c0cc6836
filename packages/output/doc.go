// Package output renders bddrun results for people and for tools.
//
// Supported output formats:
//   - Console: colored terminal output for runs, warnings, history and feature listings
//   - JSON: machine-readable history and feature listings
package output
