package merit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavelanni/meritrank/internal/model"
)

func TestRatios(t *testing.T) {
	assert.Equal(t, 0.0, ProgressRatio(3, 0))
	assert.Equal(t, 0.5, ProgressRatio(2, 4))
	assert.Equal(t, 0.0, PaceRatio(10, 0))
	assert.Equal(t, 0.0, PaceRatio(10, -26))
	assert.Equal(t, 0.5, PaceRatio(13, 26))
	assert.Equal(t, 78, ExpectedCredits(3))
}

func TestIndicator(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  int64
	}{
		{"empty record", Stats{Semester: 1}, 0},
		{"no semester", Stats{Average: 8, Passed: 5, Enrolled: 5, Credits: 26}, 0},
		// 8.0 * 1.0 * (26/26) = 8.0
		{"full pace", Stats{Average: 8, Passed: 5, Enrolled: 5, Credits: 26, Semester: 1}, 8000},
		// 7.0 * 0.8 * (26/52) = 2.8
		{"half pace", Stats{Average: 7, Passed: 4, Enrolled: 5, Credits: 26, Semester: 2}, 2800},
		// 6.6666 * (2/3) * (15/26) = 2.5641... -> 2564, never rounded up
		{"truncates", Stats{Average: 20.0 / 3.0, Passed: 2, Enrolled: 3, Credits: 15, Semester: 1}, 2564},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Indicator(tt.stats))
		})
	}
}

func TestIndicatorTruncatesNotRounds(t *testing.T) {
	// 9 * 1 * (25/26) * 1000 = 8653.846...
	s := Stats{Average: 9, Passed: 1, Enrolled: 1, Credits: 25, Semester: 1}
	assert.Equal(t, int64(8653), Indicator(s))
}

func TestIndicatorIsDeterministic(t *testing.T) {
	s := Stats{Average: 7.31, Passed: 6, Enrolled: 8, Credits: 41, Semester: 4}
	assert.Equal(t, Indicator(s), Indicator(s))
}

func TestForRecord(t *testing.T) {
	r := model.NewAcademicRecord()
	r.Add(model.Course{ID: 1, Credits: 13}, 8.0)
	r.Add(model.Course{ID: 2, Credits: 13}, 5.0)
	// avg 6.5, progress 0.5, pace 26/26 -> 3250
	assert.Equal(t, int64(3250), ForRecord(r, 1))
	assert.Equal(t, StatsOf(r, 1), Stats{Average: 6.5, Passed: 1, Enrolled: 2, Credits: 26, Semester: 1})
}
