// Package config holds the run configuration and project settings for bddrun.
//
// It provides functionality for:
//   - The validated RunConfig consumed by the plan builder and report manager
//   - Built-in defaults for every run option
//   - Loading .bddrun.yaml settings, validated against an embedded JSON Schema
//   - The fixed report layout under the reports root
package config
