package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// settingsSchema constrains .bddrun.yaml. Enum and range checks mirror the
// command-line validators so a file default can never be invalid.
const settingsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "defaults": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "headless": {"type": "boolean"},
        "slowmo":   {"type": "integer", "minimum": 0},
        "parallel": {"type": "boolean"},
        "report":   {"enum": ["allure", "html", "both", "none"]},
        "browser":  {"enum": ["chromium", "firefox", "webkit"]},
        "baseUrl":  {"type": "string", "pattern": "^https?://[^/]+"},
        "markers":  {"type": "string"},
        "verbose":  {"type": "boolean"}
      }
    },
    "engine": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "command": {"type": "string", "minLength": 1},
        "args":    {"type": "array", "items": {"type": "string"}},
        "workdir": {"type": "string"},
        "envFile": {"type": "string"}
      }
    },
    "reports": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "root": {"type": "string", "minLength": 1},
        "open": {"type": "boolean"}
      }
    },
    "notify": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "on": {"enum": ["always", "failure", "success", "recovery"]},
        "slack": {
          "type": "object",
          "additionalProperties": false,
          "properties": {
            "webhook": {"type": "string"},
            "channel": {"type": "string"}
          }
        },
        "teams": {
          "type": "object",
          "additionalProperties": false,
          "properties": {
            "webhook": {"type": "string"}
          }
        }
      }
    },
    "history": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "enabled": {"type": "boolean"},
        "path":    {"type": "string"}
      }
    },
    "watch": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "paths": {"type": "array", "items": {"type": "string"}, "minItems": 1}
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(settingsSchema)

// validateDocument checks a decoded YAML document against the settings schema
func validateDocument(doc any) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var msgs []string
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}
