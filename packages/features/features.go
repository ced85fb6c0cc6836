// Package features reads Gherkin feature files so the CLI can show what a
// marker expression would select before handing the suite to the engine.
package features

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

// Extension is the suffix of Gherkin feature files
const Extension = ".feature"

// Feature is one parsed feature file
type Feature struct {
	Name      string
	Path      string
	Tags      []string
	Scenarios []Scenario
}

// Scenario is a scenario or scenario outline. Tags include the ones
// inherited from the enclosing feature and rule, without the leading @.
type Scenario struct {
	Name  string
	Line  int
	Tags  []string
	Steps []string
}

// HasTag reports whether the scenario carries tag, with or without @
func (s Scenario) HasTag(tag string) bool {
	tag = strings.TrimPrefix(tag, "@")
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Parse reads a single feature document
func Parse(r io.Reader, path string) (*Feature, error) {
	doc, err := gherkin.ParseGherkinDocument(r, (&messages.Incrementing{}).NewId)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f := &Feature{Path: path}
	if doc.Feature == nil {
		return f, nil
	}

	f.Name = doc.Feature.Name
	f.Tags = tagNames(doc.Feature.Tags)

	for _, child := range doc.Feature.Children {
		switch {
		case child.Scenario != nil:
			f.Scenarios = append(f.Scenarios, newScenario(child.Scenario, f.Tags))
		case child.Rule != nil:
			inherited := append(append([]string{}, f.Tags...), tagNames(child.Rule.Tags)...)
			for _, rc := range child.Rule.Children {
				if rc.Scenario != nil {
					f.Scenarios = append(f.Scenarios, newScenario(rc.Scenario, inherited))
				}
			}
		}
	}
	return f, nil
}

// ParseFile reads the feature file at path
func ParseFile(path string) (*Feature, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file, path)
}

// Files lists the feature files under the given paths. Directories are
// walked recursively; explicit file arguments are kept as given. The
// result is ordered by path.
func Files(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, Extension) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// Collect parses every feature file under the given paths. Files that
// fail to parse are skipped and their errors joined; the rest are still
// returned.
func Collect(paths []string) ([]*Feature, error) {
	files, err := Files(paths)
	if err != nil {
		return nil, err
	}

	var (
		result []*Feature
		errs   []error
	)
	for _, path := range files {
		f, err := ParseFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		result = append(result, f)
	}
	return result, errors.Join(errs...)
}

// FilterByTag keeps the scenarios carrying tag. Features left with no
// scenarios are dropped. An empty tag keeps everything.
func FilterByTag(list []*Feature, tag string) []*Feature {
	if tag == "" {
		return list
	}

	var result []*Feature
	for _, f := range list {
		var kept []Scenario
		for _, s := range f.Scenarios {
			if s.HasTag(tag) {
				kept = append(kept, s)
			}
		}
		if len(kept) > 0 {
			copied := *f
			copied.Scenarios = kept
			result = append(result, &copied)
		}
	}
	return result
}

// CountScenarios totals the scenarios across features
func CountScenarios(list []*Feature) int {
	n := 0
	for _, f := range list {
		n += len(f.Scenarios)
	}
	return n
}

func newScenario(sc *messages.Scenario, inherited []string) Scenario {
	s := Scenario{
		Name: sc.Name,
		Tags: append(append([]string{}, inherited...), tagNames(sc.Tags)...),
	}
	if sc.Location != nil {
		s.Line = int(sc.Location.Line)
	}
	for _, step := range sc.Steps {
		s.Steps = append(s.Steps, strings.TrimSpace(step.Keyword)+" "+step.Text)
	}
	return s
}

func tagNames(tags []*messages.Tag) []string {
	var names []string
	for _, t := range tags {
		names = append(names, strings.TrimPrefix(t.Name, "@"))
	}
	return names
}
