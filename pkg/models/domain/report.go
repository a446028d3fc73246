package domain

import "time"

// Report is a rendered calculation or results view for terminal output.
// All numeric values arrive pre-formatted as fixed-point strings.
type Report struct {
	Title     string
	Period    TimePeriod
	Sections  []ReportSection
	TotalCost string
	Currency  string
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary []SummaryLine
	Details []ReportDetail
}

// SummaryLine is one labeled figure above a section's table. Lines
// render in slice order.
type SummaryLine struct {
	Label string
	Value string
}

// ReportDetail represents one table row within a section
type ReportDetail struct {
	Name        string
	Value       string
	Unit        string
	Description string
}
