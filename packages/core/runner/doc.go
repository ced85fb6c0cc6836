// Package runner delegates a planned invocation to the external test engine.
//
// The engine owns scheduling, parallelism and BDD step resolution. The
// runner starts it, waits for it and reports its exit status unchanged;
// it never retries and never interprets the status.
package runner
