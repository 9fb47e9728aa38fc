package academic

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/meritrank/internal/catalog"
	"github.com/pavelanni/meritrank/internal/merit"
	"github.com/pavelanni/meritrank/internal/model"
)

func newTestGenerator(t *testing.T, seed uint64) *Generator {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return NewGenerator(c, rand.New(rand.NewPCG(seed, seed)))
}

// fixedRand always returns the lowest value of every range.
type fixedRand struct{}

func (fixedRand) IntN(int) int     { return 0 }
func (fixedRand) Float64() float64 { return 0 }

func semestersOf(pool []model.Course) map[int]bool {
	out := make(map[int]bool)
	for _, c := range pool {
		out[c.Semester] = true
	}
	return out
}

func TestCandidatePool(t *testing.T) {
	g := newTestGenerator(t, 1)

	tests := []struct {
		semester  int
		size      int
		semesters []int
	}{
		{1, 5, []int{1}},
		{2, 15, []int{1, 2, 3}},
		{3, 15, []int{2, 3, 4}},
		{4, 20, []int{1, 3, 4, 5}},
		{5, 25, []int{1, 2, 4, 5, 6}},
		{9, 45, []int{1, 2, 3, 4, 5, 6, 8, 9, 10}},
		{10, 45, []int{1, 2, 3, 4, 5, 6, 7, 9, 10}},
	}
	for _, tt := range tests {
		pool := g.CandidatePool(tt.semester)
		assert.Len(t, pool, tt.size, "semester %d", tt.semester)

		got := semestersOf(pool)
		assert.Len(t, got, len(tt.semesters), "semester %d", tt.semester)
		for _, s := range tt.semesters {
			assert.True(t, got[s], "semester %d pool should include bucket %d", tt.semester, s)
		}
	}
}

func TestCandidatePoolHasNoDuplicates(t *testing.T) {
	g := newTestGenerator(t, 1)
	for s := 1; s <= 10; s++ {
		seen := make(map[int]bool)
		for _, c := range g.CandidatePool(s) {
			assert.False(t, seen[c.ID], "semester %d repeats course %d", s, c.ID)
			seen[c.ID] = true
		}
	}
}

func TestWindowClipsAtCatalogEnd(t *testing.T) {
	g := newTestGenerator(t, 1)
	start, end := g.Window(10)
	assert.Equal(t, 9, start)
	assert.Equal(t, 10, end)

	start, end = g.Window(2)
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)
}

func TestBuildRespectsBounds(t *testing.T) {
	g := newTestGenerator(t, 42)
	for round := 0; round < 50; round++ {
		for s := 1; s <= 10; s++ {
			pool := g.CandidatePool(s)
			require.NotEmpty(t, pool)

			r := g.Build(s)
			n := r.EnrolledCount()
			assert.LessOrEqual(t, n, len(pool))
			if s == 1 {
				assert.Equal(t, 5, n)
			} else {
				assert.GreaterOrEqual(t, n, MinEnrollment)
				assert.LessOrEqual(t, n, MaxEnrollment)
			}

			credits := 0
			inPool := make(map[int]bool)
			for _, c := range pool {
				inPool[c.ID] = true
			}
			for _, e := range r.Enrollments() {
				assert.True(t, inPool[e.Course.ID])
				assert.GreaterOrEqual(t, e.Grade, MinGrade)
				assert.Less(t, e.Grade, MaxGrade)
				credits += e.Course.Credits
			}
			assert.Equal(t, credits, r.TotalCredits())
		}
	}
}

func TestFirstSemesterTakesWholeBucket(t *testing.T) {
	c, err := catalog.New(10, []model.Course{
		{ID: 1, Name: "C1", Credits: 3, Semester: 1},
		{ID: 2, Name: "C2", Credits: 4, Semester: 1},
		{ID: 3, Name: "C3", Credits: 2, Semester: 1},
		{ID: 4, Name: "C4", Credits: 5, Semester: 1},
		{ID: 5, Name: "C5", Credits: 1, Semester: 1},
	})
	require.NoError(t, err)
	g := NewGenerator(c, rand.New(rand.NewPCG(3, 3)))

	st := model.NewStudent(1, model.PersonalData{LastSurname: "Ruiz"}, model.DefaultProgram, 1)
	r := g.Generate(st)

	assert.Equal(t, 5, r.EnrolledCount())
	assert.Equal(t, 15, r.TotalCredits())
	assert.Same(t, r, st.Record)
}

func TestEmptyPool(t *testing.T) {
	c, err := catalog.New(10, nil)
	require.NoError(t, err)
	g := NewGenerator(c, fixedRand{})

	st := model.NewStudent(1, model.PersonalData{}, model.DefaultProgram, 4)
	r := g.Generate(st)
	assert.Equal(t, 0, r.EnrolledCount())
	assert.Equal(t, int64(0), st.RawIndicator)
}

func TestSmallPoolEnrollsEverything(t *testing.T) {
	c, err := catalog.New(10, []model.Course{
		{ID: 1, Name: "A", Credits: 3, Semester: 2},
		{ID: 2, Name: "B", Credits: 3, Semester: 3},
		{ID: 3, Name: "C", Credits: 3, Semester: 3},
	})
	require.NoError(t, err)
	g := NewGenerator(c, rand.New(rand.NewPCG(5, 5)))

	assert.Equal(t, 3, g.EnrollmentCount(2, 3))
	assert.Equal(t, 3, g.Build(2).EnrolledCount())
}

func TestEnrollmentCountRange(t *testing.T) {
	g := newTestGenerator(t, 9)
	counts := make(map[int]int)
	for i := 0; i < 2000; i++ {
		counts[g.EnrollmentCount(5, 25)]++
	}
	for k := MinEnrollment; k <= MaxEnrollment; k++ {
		assert.Positive(t, counts[k], "count %d never drawn", k)
	}
	assert.Len(t, counts, MaxEnrollment-MinEnrollment+1)

	// Pool of 7 caps the upper bound.
	for i := 0; i < 200; i++ {
		n := g.EnrollmentCount(3, 7)
		assert.GreaterOrEqual(t, n, 5)
		assert.LessOrEqual(t, n, 7)
	}
	assert.Equal(t, 0, g.EnrollmentCount(3, 0))
}

func TestGenerateWithFixedRand(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	g := NewGenerator(c, fixedRand{})

	st := model.NewStudent(1, model.PersonalData{}, model.DefaultProgram, 2)
	r := g.Generate(st)

	// IntN always 0: five courses, grade 5.0 each, so nothing passes.
	assert.Equal(t, 5, r.EnrolledCount())
	assert.Equal(t, 0, r.PassedCount())
	assert.Equal(t, 5.0, r.Average())
	assert.Equal(t, int64(0), st.RawIndicator)
}

func TestGenerateReplacesRecord(t *testing.T) {
	g := newTestGenerator(t, 11)
	st := model.NewStudent(1, model.PersonalData{}, model.DefaultProgram, 6)

	first := g.Generate(st)
	second := g.Generate(st)
	assert.NotSame(t, first, second)
	assert.Same(t, second, st.Record)
	assert.Equal(t, merit.ForRecord(second, 6), st.RawIndicator)
}

func TestSampleIsDistinct(t *testing.T) {
	g := newTestGenerator(t, 13)
	pool := g.CandidatePool(9)
	for i := 0; i < 100; i++ {
		picked := g.Sample(pool, 10)
		require.Len(t, picked, 10)
		seen := make(map[int]bool)
		for _, c := range picked {
			assert.False(t, seen[c.ID])
			seen[c.ID] = true
		}
	}
	assert.Len(t, g.Sample(pool[:3], 10), 3)
}
