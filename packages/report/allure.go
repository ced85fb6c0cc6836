package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/bddrun/packages/core/config"
	"github.com/tidwall/gjson"
)

const resultSuffix = "-result.json"

// Stats summarizes the allure results of one run
type Stats struct {
	Total    int       `json:"total"`
	Passed   int       `json:"passed"`
	Failed   int       `json:"failed"`
	Broken   int       `json:"broken"`
	Skipped  int       `json:"skipped"`
	Unknown  int       `json:"unknown"`
	Failures []Failure `json:"failures,omitempty"`
}

// Failure is a failed or broken scenario
type Failure struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// RunInfo describes the run for the allure environment and executor files
type RunInfo struct {
	ID     string
	Config config.RunConfig
}

// resultFiles lists the allure result artifacts in dir. A missing
// directory has no results.
func resultFiles(files FileSystem, dir string) ([]string, error) {
	entries, err := files.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), resultSuffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// summarize tallies result statuses. Unreadable or malformed results
// count as unknown rather than failing the summary.
func summarize(files FileSystem, paths []string) *Stats {
	s := &Stats{Total: len(paths)}
	for _, p := range paths {
		data, err := files.ReadFile(p)
		if err != nil || !gjson.ValidBytes(data) {
			s.Unknown++
			continue
		}

		res := gjson.GetManyBytes(data, "status", "name", "fullName", "statusDetails.message")
		status, name := res[0].String(), res[1].String()
		if name == "" {
			name = res[2].String()
		}

		switch status {
		case "passed":
			s.Passed++
		case "failed":
			s.Failed++
			s.Failures = append(s.Failures, Failure{Name: name, Status: status, Message: firstLine(res[3].String())})
		case "broken":
			s.Broken++
			s.Failures = append(s.Failures, Failure{Name: name, Status: status, Message: firstLine(res[3].String())})
		case "skipped":
			s.Skipped++
		default:
			s.Unknown++
		}
	}
	return s
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

// environmentProperties renders the allure environment widget contents
func environmentProperties(cfg config.RunConfig) []byte {
	markers := cfg.Markers
	if markers == "" {
		markers = "none"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Browser=%s\n", cfg.Browser)
	fmt.Fprintf(&b, "Headless=%s\n", strconv.FormatBool(cfg.Headless))
	fmt.Fprintf(&b, "SlowMo=%d\n", cfg.SlowMo)
	fmt.Fprintf(&b, "Parallel=%s\n", strconv.FormatBool(cfg.Parallel))
	fmt.Fprintf(&b, "BaseURL=%s\n", cfg.BaseURL)
	fmt.Fprintf(&b, "Markers=%s\n", markers)
	return []byte(b.String())
}

type executorInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	BuildName  string `json:"buildName"`
	ReportName string `json:"reportName"`
}

// writeMetadata drops environment.properties and executor.json next to
// the results so the rendered report shows how the run was configured
func writeMetadata(files FileSystem, dir string, info RunInfo) error {
	if err := files.WriteFile(filepath.Join(dir, "environment.properties"), environmentProperties(info.Config), 0644); err != nil {
		return err
	}

	data, err := json.MarshalIndent(executorInfo{
		Name:       "bddrun",
		Type:       "local",
		BuildName:  info.ID,
		ReportName: fmt.Sprintf("%s run %s", info.Config.Browser, info.ID),
	}, "", "  ")
	if err != nil {
		return err
	}
	return files.WriteFile(filepath.Join(dir, "executor.json"), data, 0644)
}
