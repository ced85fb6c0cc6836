package options

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/bddrun/packages/core/config"
)

// InvalidArgumentError reports a value outside a field's domain
type InvalidArgumentError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid value %q for --%s: %s", e.Value, e.Field, e.Reason)
}

// UnknownOptionError reports a token that names no known option
type UnknownOptionError struct {
	Flag string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option: %s", e.Flag)
}

// Result is the outcome of parsing one invocation's tokens
type Result struct {
	Config config.RunConfig

	// Help is set when --help or -h was reached before any error.
	// Config is then the base configuration and must not be used to run.
	Help bool

	// Passthrough holds the tokens after a bare "--", verbatim
	Passthrough []string
}

var (
	truthy    = []string{"true", "1", "yes", "on"}
	falsy     = []string{"false", "0", "no", "off"}
	slowMoRe  = regexp.MustCompile(`^[0-9]+$`)
	boolUsage = "one of " + strings.Join(truthy, ", ") + ", " + strings.Join(falsy, ", ")
)

// option binds one --key to the field it sets
type option struct {
	name    string
	domain  string
	apply   func(cfg *config.RunConfig, value string) error
	current func(cfg config.RunConfig) string
}

var optionTable = []option{
	{
		name:   "headless",
		domain: "bool",
		apply: func(cfg *config.RunConfig, v string) error {
			b, err := ParseBool("headless", v)
			cfg.Headless = b
			return err
		},
		current: func(cfg config.RunConfig) string { return strconv.FormatBool(cfg.Headless) },
	},
	{
		name:   "slowmo",
		domain: "non-negative integer (ms)",
		apply: func(cfg *config.RunConfig, v string) error {
			n, err := ParseSlowMo(v)
			cfg.SlowMo = n
			return err
		},
		current: func(cfg config.RunConfig) string { return strconv.Itoa(cfg.SlowMo) },
	},
	{
		name:   "parallel",
		domain: "bool",
		apply: func(cfg *config.RunConfig, v string) error {
			b, err := ParseBool("parallel", v)
			cfg.Parallel = b
			return err
		},
		current: func(cfg config.RunConfig) string { return strconv.FormatBool(cfg.Parallel) },
	},
	{
		name:   "report",
		domain: "{" + joinModes(config.ReportModes) + "}",
		apply: func(cfg *config.RunConfig, v string) error {
			m, err := ParseReportMode(v)
			cfg.Report = m
			return err
		},
		current: func(cfg config.RunConfig) string { return string(cfg.Report) },
	},
	{
		name:   "browser",
		domain: "{" + joinBrowsers(config.Browsers) + "}",
		apply: func(cfg *config.RunConfig, v string) error {
			b, err := ParseBrowser(v)
			cfg.Browser = b
			return err
		},
		current: func(cfg config.RunConfig) string { return string(cfg.Browser) },
	},
	{
		name:   "base-url",
		domain: "URL",
		apply: func(cfg *config.RunConfig, v string) error {
			u, err := ParseBaseURL(v)
			cfg.BaseURL = u
			return err
		},
		current: func(cfg config.RunConfig) string { return cfg.BaseURL },
	},
	{
		name:   "markers",
		domain: "marker expression",
		apply: func(cfg *config.RunConfig, v string) error {
			cfg.Markers = v
			return nil
		},
		current: func(cfg config.RunConfig) string {
			if cfg.Markers == "" {
				return "none"
			}
			return cfg.Markers
		},
	},
	{
		name:   "verbose",
		domain: "bool",
		apply: func(cfg *config.RunConfig, v string) error {
			b, err := ParseBool("verbose", v)
			cfg.Verbose = b
			return err
		},
		current: func(cfg config.RunConfig) string { return strconv.FormatBool(cfg.Verbose) },
	},
}

func lookup(name string) (option, bool) {
	for _, o := range optionTable {
		if o.name == name {
			return o, true
		}
	}
	return option{}, false
}

// Parse resolves tokens left to right over base. The first error or help
// request ends parsing; on error the returned Result is zero.
func Parse(tokens []string, base config.RunConfig) (Result, error) {
	// Work on a copy; base is never touched and a failed parse exposes nothing
	cfg := base

	for i, tok := range tokens {
		if tok == "--" {
			rest := make([]string, len(tokens)-i-1)
			copy(rest, tokens[i+1:])
			return Result{Config: cfg, Passthrough: rest}, nil
		}

		if tok == "--help" || tok == "-h" {
			return Result{Config: base, Help: true}, nil
		}

		if !strings.HasPrefix(tok, "--") {
			return Result{}, &UnknownOptionError{Flag: tok}
		}

		key, value, hasValue := strings.Cut(strings.TrimPrefix(tok, "--"), "=")
		opt, ok := lookup(key)
		if !ok {
			return Result{}, &UnknownOptionError{Flag: "--" + key}
		}
		if !hasValue {
			return Result{}, &InvalidArgumentError{Field: key, Value: "", Reason: "expected --" + key + "=<value>"}
		}
		if err := opt.apply(&cfg, value); err != nil {
			return Result{}, err
		}
	}

	return Result{Config: cfg}, nil
}

// ParseBool accepts the truthy and falsy spellings, case-insensitively
func ParseBool(field, value string) (bool, error) {
	v := strings.ToLower(value)
	for _, s := range truthy {
		if v == s {
			return true, nil
		}
	}
	for _, s := range falsy {
		if v == s {
			return false, nil
		}
	}
	return false, &InvalidArgumentError{Field: field, Value: value, Reason: "must be " + boolUsage}
}

// ParseSlowMo accepts a non-negative decimal integer literal
func ParseSlowMo(value string) (int, error) {
	if !slowMoRe.MatchString(value) {
		return 0, &InvalidArgumentError{Field: "slowmo", Value: value, Reason: "must be a non-negative integer"}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &InvalidArgumentError{Field: "slowmo", Value: value, Reason: "out of range"}
	}
	return n, nil
}

// ParseReportMode accepts exactly one of the report modes
func ParseReportMode(value string) (config.ReportMode, error) {
	for _, m := range config.ReportModes {
		if value == string(m) {
			return m, nil
		}
	}
	return "", &InvalidArgumentError{Field: "report", Value: value, Reason: "must be one of " + joinModes(config.ReportModes)}
}

// ParseBrowser accepts exactly one of the supported browsers
func ParseBrowser(value string) (config.Browser, error) {
	for _, b := range config.Browsers {
		if value == string(b) {
			return b, nil
		}
	}
	return "", &InvalidArgumentError{Field: "browser", Value: value, Reason: "must be one of " + joinBrowsers(config.Browsers)}
}

// ParseBaseURL accepts an absolute http or https URL
func ParseBaseURL(value string) (string, error) {
	if err := config.ValidateBaseURL(value); err != nil {
		return "", &InvalidArgumentError{Field: "base-url", Value: value, Reason: "must be an absolute http or https URL"}
	}
	return value, nil
}

func joinModes(modes []config.ReportMode) string {
	s := make([]string, len(modes))
	for i, m := range modes {
		s[i] = string(m)
	}
	return strings.Join(s, ", ")
}

func joinBrowsers(browsers []config.Browser) string {
	s := make([]string, len(browsers))
	for i, b := range browsers {
		s[i] = string(b)
	}
	return strings.Join(s, ", ")
}
