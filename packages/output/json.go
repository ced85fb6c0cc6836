package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/abdul-hamid-achik/bddrun/packages/features"
	"github.com/abdul-hamid-achik/bddrun/packages/history"
)

// JSONRun is one history entry
type JSONRun struct {
	ID        string              `json:"id"`
	StartedAt string              `json:"startedAt"`
	Duration  float64             `json:"duration"`
	ExitCode  int                 `json:"exitCode"`
	Passed    bool                `json:"passed"`
	Browser   string              `json:"browser"`
	Headless  bool                `json:"headless"`
	Report    string              `json:"report"`
	BaseURL   string              `json:"baseUrl"`
	Markers   string              `json:"markers,omitempty"`
	Scenarios *JSONScenarioCounts `json:"scenarios,omitempty"`
}

// JSONScenarioCounts are the allure tallies of a run
type JSONScenarioCounts struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Broken  int `json:"broken"`
	Skipped int `json:"skipped"`
}

// JSONFeature is one feature file in a listing
type JSONFeature struct {
	Name      string         `json:"name"`
	Path      string         `json:"path"`
	Tags      []string       `json:"tags,omitempty"`
	Scenarios []JSONScenario `json:"scenarios"`
}

// JSONScenario is one scenario in a listing
type JSONScenario struct {
	Name string   `json:"name"`
	Line int      `json:"line"`
	Tags []string `json:"tags,omitempty"`
}

// JSONFormatter writes indented JSON documents
type JSONFormatter struct {
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

// History writes runs as a JSON array, newest first
func (f *JSONFormatter) History(runs []history.Run) error {
	out := make([]JSONRun, 0, len(runs))
	for _, r := range runs {
		run := JSONRun{
			ID:        r.ID,
			StartedAt: r.StartedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Duration:  float64(r.Duration.Milliseconds()),
			ExitCode:  r.ExitCode,
			Passed:    r.Succeeded(),
			Browser:   r.Browser,
			Headless:  r.Headless,
			Report:    r.Report,
			BaseURL:   r.BaseURL,
			Markers:   r.Markers,
		}
		if r.Total > 0 {
			run.Scenarios = &JSONScenarioCounts{
				Total:   r.Total,
				Passed:  r.Passed,
				Failed:  r.Failed,
				Broken:  r.Broken,
				Skipped: r.Skipped,
			}
		}
		out = append(out, run)
	}
	return f.encode(out)
}

// Features writes a feature listing as a JSON array
func (f *JSONFormatter) Features(list []*features.Feature) error {
	out := make([]JSONFeature, 0, len(list))
	for _, feat := range list {
		jf := JSONFeature{
			Name:      feat.Name,
			Path:      feat.Path,
			Tags:      feat.Tags,
			Scenarios: make([]JSONScenario, 0, len(feat.Scenarios)),
		}
		for _, s := range feat.Scenarios {
			jf.Scenarios = append(jf.Scenarios, JSONScenario{Name: s.Name, Line: s.Line, Tags: s.Tags})
		}
		out = append(out, jf)
	}
	return f.encode(out)
}

func (f *JSONFormatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
