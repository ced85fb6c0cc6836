// Package report manages report artifacts around a test engine run.
//
// Before the run it clears stale artifacts for the selected report mode;
// a cleanup failure aborts the run. After the run it verifies and
// post-processes what the engine produced: counting allure results,
// writing allure metadata, rendering the allure site and opening the
// html report. Post-run problems are returned as warnings and never
// affect the exit status.
//
// Filesystem and external tool access go through the FileSystem and
// Tools interfaces so the lifecycle can be exercised without either.
package report
