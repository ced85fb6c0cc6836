package report

import "fmt"

// WarningKind classifies a non-fatal report problem
type WarningKind string

const (
	NoResultsGenerated   WarningKind = "NoResultsGenerated"
	ReportToolMissing    WarningKind = "ReportToolMissing"
	ReportFileMissing    WarningKind = "ReportFileMissing"
	ReportRenderFailed   WarningKind = "ReportRenderFailed"
	ReportViewerFailed   WarningKind = "ReportViewerFailed"
	ReportMetadataFailed WarningKind = "ReportMetadataFailed"
)

// Warning is a post-run report problem. Warnings are reported to the
// user and never change the exit status.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// CleanupError reports a pre-run cleanup that could not complete
type CleanupError struct {
	Path string
	Err  error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cannot clean report artifacts at %s: %v", e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}
