package config

// ReportMode selects which report artifacts a run produces.
type ReportMode string

const (
	ReportAllure ReportMode = "allure"
	ReportHTML   ReportMode = "html"
	ReportBoth   ReportMode = "both"
	ReportNone   ReportMode = "none"
)

// ReportModes lists every accepted report mode in display order.
var ReportModes = []ReportMode{ReportAllure, ReportHTML, ReportBoth, ReportNone}

// Allure reports whether the mode produces allure results.
func (m ReportMode) Allure() bool {
	return m == ReportAllure || m == ReportBoth
}

// HTML reports whether the mode produces the single-file html report.
func (m ReportMode) HTML() bool {
	return m == ReportHTML || m == ReportBoth
}

// Browser is the browser engine the suite launches.
type Browser string

const (
	BrowserChromium Browser = "chromium"
	BrowserFirefox  Browser = "firefox"
	BrowserWebkit   Browser = "webkit"
)

// Browsers lists every accepted browser in display order.
var Browsers = []Browser{BrowserChromium, BrowserFirefox, BrowserWebkit}

// RunConfig is the validated configuration for one invocation.
// It is a plain value: copies never share state, and nothing mutates
// it once the option parser has returned it.
type RunConfig struct {
	Headless bool
	SlowMo   int // milliseconds
	Parallel bool
	Report   ReportMode
	Browser  Browser
	BaseURL  string
	Markers  string // empty means no marker filter
	Verbose  bool
}

// HasMarkers reports whether a marker expression was supplied
func (c RunConfig) HasMarkers() bool {
	return c.Markers != ""
}
