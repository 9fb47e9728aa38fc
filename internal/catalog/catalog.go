// Package catalog holds the fixed course catalog, partitioned into semester buckets.
//
// Membership is declared in the catalog data: every course names its semester.
// A Catalog is built once at startup and is read-only afterwards; accessors hand
// out copies so callers cannot alter a bucket.
package catalog

import (
	"cmp"
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/pavelanni/meritrank/internal/model"
)

// DefaultSemesters is the number of semesters in the reference program.
const DefaultSemesters = 10

//go:embed catalog.yaml
var defaultCatalog []byte

// file is the on-disk shape of a catalog declaration.
type file struct {
	Semesters int            `yaml:"semesters"`
	Courses   []model.Course `yaml:"courses"`
}

// Catalog is an immutable mapping from semester number to its courses.
type Catalog struct {
	semesters int
	buckets   map[int][]model.Course
	byID      map[int]model.Course
}

// New validates courses and builds a catalog with the given number of semesters.
// Buckets without courses are allowed.
func New(semesters int, courses []model.Course) (*Catalog, error) {
	const op = "catalog.New"
	if semesters <= 0 {
		return nil, model.InvalidInput(op, "semester count must be positive, got %d", semesters)
	}
	c := &Catalog{
		semesters: semesters,
		buckets:   make(map[int][]model.Course, semesters),
		byID:      make(map[int]model.Course, len(courses)),
	}
	for _, course := range courses {
		switch {
		case course.ID <= 0:
			return nil, model.InvalidInput(op, "course %q has non-positive id %d", course.Name, course.ID)
		case course.Name == "":
			return nil, model.InvalidInput(op, "course %d has no name", course.ID)
		case course.Credits < 0:
			return nil, model.InvalidInput(op, "course %d has negative credits", course.ID)
		case course.Semester < 1 || course.Semester > semesters:
			return nil, model.InvalidInput(op, "course %d declares semester %d outside 1..%d", course.ID, course.Semester, semesters)
		}
		if _, dup := c.byID[course.ID]; dup {
			return nil, model.InvalidInput(op, "duplicate course id %d", course.ID)
		}
		c.byID[course.ID] = course
		c.buckets[course.Semester] = append(c.buckets[course.Semester], course)
	}
	for s := range c.buckets {
		slices.SortFunc(c.buckets[s], func(a, b model.Course) int { return cmp.Compare(a.ID, b.ID) })
	}
	return c, nil
}

// Parse decodes a YAML catalog declaration.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if f.Semesters == 0 {
		f.Semesters = DefaultSemesters
	}
	return New(f.Semesters, f.Courses)
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.Unavailable("catalog.Load", "read "+path, err)
	}
	return Parse(data)
}

// Default returns the embedded reference catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Semesters returns the number of semester buckets.
func (c *Catalog) Semesters() int {
	return c.semesters
}

// Bucket returns a copy of the courses of the given semester, ordered by id.
// Out-of-range semesters yield an empty slice.
func (c *Catalog) Bucket(semester int) []model.Course {
	return slices.Clone(c.buckets[semester])
}

// Courses returns every course ordered by semester, then id.
func (c *Catalog) Courses() []model.Course {
	out := make([]model.Course, 0, len(c.byID))
	for s := 1; s <= c.semesters; s++ {
		out = append(out, c.buckets[s]...)
	}
	return out
}

// Course looks up a course by id.
func (c *Catalog) Course(id int) (model.Course, bool) {
	course, ok := c.byID[id]
	return course, ok
}

// Len returns the number of courses in the catalog.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// ValidSemester reports whether s names a bucket of this catalog.
func (c *Catalog) ValidSemester(s int) bool {
	return s >= 1 && s <= c.semesters
}
