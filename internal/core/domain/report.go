package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// RootLocation is the location reported for violations at the document root.
const RootLocation = "<root>"

// Severity grades a diagnostic message.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Diagnostic is a human-readable message produced while running a pipeline.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Violation is one schema violation inside a document.
type Violation struct {
	// Location is the slash-joined instance path, or RootLocation.
	Location string `json:"location"`
	Message  string `json:"message"`
	// Path holds the instance path tokens. It is empty at the root.
	Path []string `json:"path,omitempty"`
}

func (v Violation) String() string {
	return v.Location + ": " + v.Message
}

func (v Violation) tokens() []string {
	if v.Path != nil || v.Location == RootLocation || v.Location == "" {
		return v.Path
	}
	return strings.Split(v.Location, "/")
}

// SortViolations orders violations by instance path, keeping the validator's
// order for equal paths. The root sorts first, array indexes compare
// numerically and sort before object keys at the same depth.
func SortViolations(violations []Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		return comparePath(violations[i].tokens(), violations[j].tokens()) < 0
	})
}

func comparePath(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareToken(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func compareToken(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return ai - bi
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// ResultStatus is the outcome for a single document.
type ResultStatus string

const (
	StatusOK      ResultStatus = "ok"
	StatusFail    ResultStatus = "fail"
	StatusSkipped ResultStatus = "skipped"
)

// DocumentResult is the validation outcome for one file.
type DocumentResult struct {
	Path       string       `json:"path"`
	RelPath    string       `json:"rel_path"`
	Type       ModelType    `json:"type"`
	Status     ResultStatus `json:"status"`
	Violations []Violation  `json:"violations,omitempty"`

	// Reason explains a skip.
	Reason string `json:"reason,omitempty"`
}

// ValidationReport aggregates one validation run. Reports are never merged.
type ValidationReport struct {
	ID          string           `json:"id"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
	ModelsDir   string           `json:"models_dir"`
	SchemasDir  string           `json:"schemas_dir"`
	Results     []DocumentResult `json:"results"`
	Passed      int              `json:"passed"`
	Failed      int              `json:"failed"`
	Skipped     int              `json:"skipped"`
	Diagnostics []Diagnostic     `json:"diagnostics,omitempty"`
}

// Add appends a result and updates the aggregate counts.
// Skipped documents count toward neither pass nor fail.
func (r *ValidationReport) Add(result DocumentResult) {
	switch result.Status {
	case StatusOK:
		r.Passed++
	case StatusFail:
		r.Failed++
	case StatusSkipped:
		r.Skipped++
	}
	r.Results = append(r.Results, result)
}

// Diagnose records a run-level diagnostic.
func (r *ValidationReport) Diagnose(severity Severity, message string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: severity, Message: message})
}

// OK reports whether no classified document failed.
func (r *ValidationReport) OK() bool {
	return r.Failed == 0
}

// ExitCode is 0 when the run passed and 1 otherwise.
func (r *ValidationReport) ExitCode() int {
	if r.OK() {
		return 0
	}
	return 1
}

// RunSummary is the stored headline of a past validation run.
type RunSummary struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	ModelsDir  string
	Passed     int
	Failed     int
	Skipped    int
}

// Summary returns the headline of the report.
func (r *ValidationReport) Summary() RunSummary {
	return RunSummary{
		ID:         r.ID,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		ModelsDir:  r.ModelsDir,
		Passed:     r.Passed,
		Failed:     r.Failed,
		Skipped:    r.Skipped,
	}
}

// FileChange is a filesystem event relevant to a pipeline run.
type FileChange struct {
	Path string
	Op   string
}
