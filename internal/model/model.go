package model

import (
	"cmp"
	"slices"
	"strings"
)

// PassingGrade is the minimum grade that counts a course as passed.
const PassingGrade = 6.0

// DefaultProgram is the degree program every generated student belongs to.
const DefaultProgram = "Ingenieria en Computacion"

// Course is a catalog entry. Courses are immutable once the catalog is built.
type Course struct {
	ID       int    `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Credits  int    `yaml:"credits" json:"credits"`
	Semester int    `yaml:"semester" json:"semester"`
}

// Enrollment is one graded course inside an academic record.
type Enrollment struct {
	Course Course
	Grade  float64
}

// AcademicRecord holds the courses a student has taken and their grades.
// A record belongs to exactly one student and is replaced, never merged.
type AcademicRecord struct {
	enrollments  map[int]Enrollment
	totalCredits int
}

// NewAcademicRecord returns an empty record.
func NewAcademicRecord() *AcademicRecord {
	return &AcademicRecord{enrollments: make(map[int]Enrollment)}
}

// Add records a grade for a course. Adding a course that is already present
// replaces its grade without counting its credits twice.
func (r *AcademicRecord) Add(c Course, grade float64) {
	if _, ok := r.enrollments[c.ID]; !ok {
		r.totalCredits += c.Credits
	}
	r.enrollments[c.ID] = Enrollment{Course: c, Grade: grade}
}

// TotalCredits returns the sum of credits of all enrolled courses.
func (r *AcademicRecord) TotalCredits() int {
	return r.totalCredits
}

// EnrolledCount returns the number of distinct courses in the record.
func (r *AcademicRecord) EnrolledCount() int {
	return len(r.enrollments)
}

// PassedCount returns the number of courses graded at or above PassingGrade.
func (r *AcademicRecord) PassedCount() int {
	passed := 0
	for _, e := range r.enrollments {
		if e.Grade >= PassingGrade {
			passed++
		}
	}
	return passed
}

// Average returns the mean grade, or 0 for an empty record.
func (r *AcademicRecord) Average() float64 {
	if len(r.enrollments) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, e := range r.enrollments {
		sum += e.Grade
	}
	return sum / float64(len(r.enrollments))
}

// Enrollments returns the record's entries ordered by course ID.
func (r *AcademicRecord) Enrollments() []Enrollment {
	out := make([]Enrollment, 0, len(r.enrollments))
	for _, e := range r.enrollments {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Enrollment) int {
		return cmp.Compare(a.Course.ID, b.Course.ID)
	})
	return out
}

// Has reports whether the record contains the course with the given ID.
func (r *AcademicRecord) Has(courseID int) bool {
	_, ok := r.enrollments[courseID]
	return ok
}

// PersonalData holds the editable, non-academic fields of a student.
type PersonalData struct {
	FirstName     string
	MiddleName    string // empty when the student has a single given name
	LastSurname   string
	SecondSurname string
	Age           int
	Address       string
	Gender        string
}

// Student is a member of the ranked population. Identity is AccountID.
type Student struct {
	AccountID     int64
	FirstName     string
	MiddleName    string
	LastSurname   string
	SecondSurname string
	Age           int
	Program       string
	Semester      int
	Address       string
	Gender        string

	// RawIndicator is the integer merit score; 0 until first computed.
	RawIndicator int64
	// FinalRank is the 1-based position after the last rerank; 0 means unranked.
	FinalRank int

	Record *AcademicRecord
}

// NewStudent builds an unranked student with an empty record.
func NewStudent(accountID int64, p PersonalData, program string, semester int) *Student {
	s := &Student{
		AccountID: accountID,
		Program:   program,
		Semester:  semester,
		Record:    NewAcademicRecord(),
	}
	s.Apply(p)
	return s
}

// Apply overwrites the personal fields of the student.
func (s *Student) Apply(p PersonalData) {
	s.FirstName = p.FirstName
	s.MiddleName = p.MiddleName
	s.LastSurname = p.LastSurname
	s.SecondSurname = p.SecondSurname
	s.Age = p.Age
	s.Address = p.Address
	s.Gender = p.Gender
}

// Personal returns the student's current personal fields.
func (s *Student) Personal() PersonalData {
	return PersonalData{
		FirstName:     s.FirstName,
		MiddleName:    s.MiddleName,
		LastSurname:   s.LastSurname,
		SecondSurname: s.SecondSurname,
		Age:           s.Age,
		Address:       s.Address,
		Gender:        s.Gender,
	}
}

// FullName joins the name parts, omitting an empty middle name.
func (s *Student) FullName() string {
	parts := []string{s.FirstName}
	if s.MiddleName != "" {
		parts = append(parts, s.MiddleName)
	}
	parts = append(parts, s.LastSurname, s.SecondSurname)
	return strings.Join(parts, " ")
}

// IsRanked reports whether the ranking engine has assigned a position.
func (s *Student) IsRanked() bool {
	return s.FinalRank > 0
}
