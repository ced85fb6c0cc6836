package config

const (
	// DefaultBaseURL is the application under test when no --base-url is given
	DefaultBaseURL = "https://blankfactor.com/"

	// DefaultSlowMo is the default delay between browser operations in milliseconds
	DefaultSlowMo = 1500

	// DefaultEngineCommand is the test engine executable
	DefaultEngineCommand = "pytest"

	// DefaultReportsRoot is the directory holding every report artifact
	DefaultReportsRoot = "reports"

	// DefaultNotifyOn is the notification policy when notifiers are configured
	DefaultNotifyOn = "failure"
)

// DefaultRunConfig returns the built-in run configuration
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Headless: false,
		SlowMo:   DefaultSlowMo,
		Parallel: false,
		Report:   ReportAllure,
		Browser:  BrowserChromium,
		BaseURL:  DefaultBaseURL,
		Markers:  "",
		Verbose:  true,
	}
}

// DefaultSettings returns project settings with every section at its default
func DefaultSettings() *Settings {
	return &Settings{
		Engine: EngineSettings{
			Command: DefaultEngineCommand,
		},
		Reports: ReportSettings{
			Root: DefaultReportsRoot,
		},
		Notify: NotifySettings{
			On: DefaultNotifyOn,
		},
		Watch: WatchSettings{
			Paths: []string{"tests"},
		},
	}
}
