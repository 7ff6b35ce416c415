package commands

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Report is the record of one command invocation: the arguments it ran
// with, what it produced and when.
type Report struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Kind      string       `json:"kind"`
	Input     []any        `json:"input"`
	Output    any          `json:"output"`
	Timestamp *time.Time   `json:"timestamp"`
	Err       *ReportError `json:"error"`
}

// NewReport creates a new report for a command invocation.
func NewReport(cmd Callable, input []any, output any, err error) Report {
	now := time.Now()
	r := Report{
		ID:        uuid.New().String(),
		Name:      cmd.Name(),
		Kind:      cmd.Kind().String(),
		Input:     input,
		Output:    output,
		Timestamp: &now,
	}
	if err != nil {
		r.Err = &ReportError{Message: err.Error()}
	}

	return r
}

// ReportError represents an error in a Report. Its purpose is to have an
// exported Message field for marshalling, as a native error can't be
// marshaled to JSON.
type ReportError struct {
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ReportError) Error() string {
	return e.Message
}

var ErrReportNotFound = errors.New("report not found")

// Reporter manages reports.
type Reporter interface {
	GetReport(id string) (Report, error)
	GetReports() ([]Report, error)
	AddReport(report Report) error
}

// MemoryReporter stores reports in memory. It is safe for concurrent use.
type MemoryReporter struct {
	reports []Report
	mu      sync.RWMutex
}

var _ Reporter = &MemoryReporter{}

// NewMemoryReporter creates a new MemoryReporter.
func NewMemoryReporter() *MemoryReporter {
	return &MemoryReporter{}
}

// AddReport adds a report to the memory reporter.
func (r *MemoryReporter) AddReport(report Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reports = append(r.reports, report)

	return nil
}

// GetReports returns all reports.
func (r *MemoryReporter) GetReports() ([]Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Copy to avoid data races after returning.
	reports := make([]Report, len(r.reports))
	copy(reports, r.reports)

	return reports, nil
}

// GetReport returns a report by ID.
// Returns ErrReportNotFound if the report is not found.
func (r *MemoryReporter) GetReport(id string) (Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, report := range r.reports {
		if report.ID == id {
			return report, nil
		}
	}

	return Report{}, fmt.Errorf("report_id %s: %w", id, ErrReportNotFound)
}
