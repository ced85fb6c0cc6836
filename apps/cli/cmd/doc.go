// Package cmd implements the bddrun CLI commands using Cobra.
//
// Available commands:
//   - run: Validate options, clean reports, run the engine, process reports
//   - watch: Like run, then re-run whenever feature or step files change
//   - list: Show features, scenarios and their tags
//   - history: Show recorded runs
//   - init: Write a settings file and an example feature
//   - version: Show version information
//
// run and watch take --key=value options that are parsed left to right by
// the options package rather than by Cobra, so the first invalid value or
// --help wins. The process exit status is the test engine's own status.
package cmd
