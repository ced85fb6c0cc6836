// Package plan derives the test engine invocation from a validated
// run configuration. Building a plan is pure: it never touches the
// filesystem or the environment.
package plan
