// Package academic builds synthetic academic histories for students.
//
// A student in semester s may have taken courses from a three-semester moving
// window starting one semester behind s, plus every semester strictly older
// than the semester right before the window (the trailing history). Semester 1
// students only see the first bucket. From that pool the generator enrolls a
// random subset and grades each course uniformly in [MinGrade, MaxGrade).
package academic

import (
	"github.com/pavelanni/meritrank/internal/catalog"
	"github.com/pavelanni/meritrank/internal/merit"
	"github.com/pavelanni/meritrank/internal/model"
)

const (
	// MinGrade is the lowest grade the generator assigns.
	MinGrade = 5.0
	// MaxGrade is the exclusive upper bound of generated grades.
	MaxGrade = 9.0

	// WindowSize is the number of semesters in the moving window.
	WindowSize = 3

	// MinEnrollment and MaxEnrollment bound the number of courses drawn for
	// students past their first semester.
	MinEnrollment = 5
	MaxEnrollment = 10

	// FirstSemesterLoad is the course count for first-semester students.
	FirstSemesterLoad = 5
)

// Rand is the randomness the generator needs. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Generator draws academic records from a catalog.
type Generator struct {
	catalog *catalog.Catalog
	rng     Rand
}

// NewGenerator returns a generator over c using rng for every draw.
func NewGenerator(c *catalog.Catalog, rng Rand) *Generator {
	return &Generator{catalog: c, rng: rng}
}

// Catalog returns the catalog the generator samples from.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

// Window returns the first and last semester of the moving window for semester s.
func (g *Generator) Window(s int) (start, end int) {
	start = max(1, s-1)
	end = min(g.catalog.Semesters(), start+WindowSize-1)
	return start, end
}

// CandidatePool returns the distinct courses a student in semester s may have
// taken, ordered by semester and then course id.
func (g *Generator) CandidatePool(s int) []model.Course {
	if s <= 1 {
		return g.catalog.Bucket(1)
	}
	start, end := g.Window(s)

	var semesters []int
	// Trailing history stops one semester short of the window.
	for h := 1; h <= start-2; h++ {
		semesters = append(semesters, h)
	}
	for w := start; w <= end; w++ {
		semesters = append(semesters, w)
	}

	seen := make(map[int]bool)
	var pool []model.Course
	for _, sem := range semesters {
		for _, c := range g.catalog.Bucket(sem) {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			pool = append(pool, c)
		}
	}
	return pool
}

// EnrollmentCount picks how many courses a student in semester s takes from a
// pool of the given size. The result never exceeds poolSize.
func (g *Generator) EnrollmentCount(s, poolSize int) int {
	if poolSize <= 0 {
		return 0
	}
	if s <= 1 {
		return min(FirstSemesterLoad, poolSize)
	}
	if poolSize < MinEnrollment {
		return poolSize
	}
	hi := min(MaxEnrollment, poolSize)
	return MinEnrollment + g.rng.IntN(hi-MinEnrollment+1)
}

// Grade draws a grade uniformly from [MinGrade, MaxGrade).
func (g *Generator) Grade() float64 {
	return MinGrade + g.rng.Float64()*(MaxGrade-MinGrade)
}

// Sample returns k distinct courses chosen uniformly from pool.
func (g *Generator) Sample(pool []model.Course, k int) []model.Course {
	k = min(k, len(pool))
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	// Partial Fisher-Yates: the first k slots end up a uniform k-subset.
	for i := 0; i < k; i++ {
		j := i + g.rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	out := make([]model.Course, k)
	for i := 0; i < k; i++ {
		out[i] = pool[idx[i]]
	}
	return out
}

// Build draws a fresh record for a student in semester s.
func (g *Generator) Build(s int) *model.AcademicRecord {
	record := model.NewAcademicRecord()
	pool := g.CandidatePool(s)
	if len(pool) == 0 {
		return record
	}
	for _, c := range g.Sample(pool, g.EnrollmentCount(s, len(pool))) {
		record.Add(c, g.Grade())
	}
	return record
}

// Generate replaces the student's record with a fresh one and recomputes the
// raw indicator from it. The previous record is discarded.
func (g *Generator) Generate(st *model.Student) *model.AcademicRecord {
	record := g.Build(st.Semester)
	st.Record = record
	st.RawIndicator = merit.ForRecord(record, st.Semester)
	return record
}
