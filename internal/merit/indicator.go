// Package merit reduces an academic record to the integer score used for ranking.
package merit

import "github.com/pavelanni/meritrank/internal/model"

// CreditsPerSemester is the credit load a student is expected to carry each semester.
const CreditsPerSemester = 26

// Scale turns the fractional indicator into an integer with three decimals of precision.
const Scale = 1000

// Stats are the record figures the indicator depends on.
type Stats struct {
	Average  float64
	Passed   int
	Enrolled int
	Credits  int
	Semester int
}

// StatsOf collects the figures of a record for a student in the given semester.
func StatsOf(r *model.AcademicRecord, semester int) Stats {
	return Stats{
		Average:  r.Average(),
		Passed:   r.PassedCount(),
		Enrolled: r.EnrolledCount(),
		Credits:  r.TotalCredits(),
		Semester: semester,
	}
}

// ExpectedCredits returns the credits a student should have by the given semester.
func ExpectedCredits(semester int) int {
	return semester * CreditsPerSemester
}

// ProgressRatio is the share of enrolled courses that were passed.
func ProgressRatio(passed, enrolled int) float64 {
	if enrolled <= 0 {
		return 0.0
	}
	return float64(passed) / float64(enrolled)
}

// PaceRatio compares accumulated credits against the expected load.
func PaceRatio(credits, expected int) float64 {
	if expected <= 0 {
		return 0.0
	}
	return float64(credits) / float64(expected)
}

// Indicator computes average * progress * pace, scaled by Scale and truncated
// toward zero. Truncation matters: rounding would change tie patterns.
func Indicator(s Stats) int64 {
	progress := ProgressRatio(s.Passed, s.Enrolled)
	pace := PaceRatio(s.Credits, ExpectedCredits(s.Semester))
	return int64(s.Average * progress * pace * Scale)
}

// ForRecord is shorthand for Indicator(StatsOf(r, semester)).
func ForRecord(r *model.AcademicRecord, semester int) int64 {
	return Indicator(StatsOf(r, semester))
}
