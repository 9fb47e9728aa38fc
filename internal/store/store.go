package store

import (
	"log/slog"
	"slices"

	"golang.org/x/text/cases"

	"github.com/pavelanni/meritrank/internal/academic"
	"github.com/pavelanni/meritrank/internal/model"
	"github.com/pavelanni/meritrank/internal/ranking"
)

// DefaultAccountBase is the first account number handed out.
const DefaultAccountBase int64 = 1000000

// Rand is the randomness the store needs: the generator's draws plus shuffling.
type Rand interface {
	academic.Rand
	Shuffle(n int, swap func(i, j int))
}

// Options tunes a Store. Zero values select the defaults.
type Options struct {
	AccountBase int64
	Program     string
	Logger      *slog.Logger
}

// Store is the in-memory student population. It keeps insertion order, hands
// out account numbers and reranks everyone after each mutation, so readers
// always see indicators and ranks that match the current population.
type Store struct {
	gen         *academic.Generator
	rng         Rand
	log         *slog.Logger
	program     string
	nextAccount int64
	students    []*model.Student
}

func New(gen *academic.Generator, rng Rand, opts Options) *Store {
	if opts.AccountBase <= 0 {
		opts.AccountBase = DefaultAccountBase
	}
	if opts.Program == "" {
		opts.Program = model.DefaultProgram
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Store{
		gen:         gen,
		rng:         rng,
		log:         opts.Logger,
		program:     opts.Program,
		nextAccount: opts.AccountBase,
	}
}

// Len returns the population size.
func (s *Store) Len() int {
	return len(s.students)
}

// All returns the students in insertion order. The slice is a copy; the
// students are shared.
func (s *Store) All() []*model.Student {
	return slices.Clone(s.students)
}

func (s *Store) validSemester(op string, semester int) error {
	if !s.gen.Catalog().ValidSemester(semester) {
		return model.InvalidInput(op, "semester %d outside 1..%d", semester, s.gen.Catalog().Semesters())
	}
	return nil
}

// Create adds a student, generates their record and indicator, and reranks.
func (s *Store) Create(p model.PersonalData, semester int) (*model.Student, error) {
	if err := s.validSemester("store.Create", semester); err != nil {
		return nil, err
	}
	st := model.NewStudent(s.nextAccount, p, s.program, semester)
	s.nextAccount++

	s.gen.Generate(st)
	s.students = append(s.students, st)
	s.rerank()

	s.log.Debug("created student",
		"account", st.AccountID,
		"semester", st.Semester,
		"courses", st.Record.EnrolledCount(),
		"indicator", st.RawIndicator,
		"rank", st.FinalRank,
	)
	return st, nil
}

// FindByAccountID returns the student with the given account, if present.
func (s *Store) FindByAccountID(id int64) (*model.Student, bool) {
	for _, st := range s.students {
		if st.AccountID == id {
			return st, true
		}
	}
	return nil, false
}

// Update overwrites the personal fields of a student. A non-zero semester that
// differs from the current one replaces the academic record. The population is
// always reranked afterwards.
func (s *Store) Update(id int64, p model.PersonalData, semester int) error {
	const op = "store.Update"
	st, ok := s.FindByAccountID(id)
	if !ok {
		return model.NotFound(op, "account %d", id)
	}
	if semester != 0 {
		if err := s.validSemester(op, semester); err != nil {
			return err
		}
	}

	st.Apply(p)
	if semester != 0 && semester != st.Semester {
		old := st.RawIndicator
		st.Semester = semester
		s.gen.Generate(st)
		s.log.Info("regenerated academic record",
			"account", id,
			"semester", semester,
			"old_indicator", old,
			"indicator", st.RawIndicator,
		)
	}
	s.rerank()
	return nil
}

// Delete removes a student and reranks the rest.
func (s *Store) Delete(id int64) error {
	i := slices.IndexFunc(s.students, func(st *model.Student) bool { return st.AccountID == id })
	if i < 0 {
		return model.NotFound("store.Delete", "account %d", id)
	}
	s.students = slices.Delete(s.students, i, i+1)
	s.rerank()
	s.log.Info("deleted student", "account", id, "remaining", len(s.students))
	return nil
}

// FindBySurname returns every student whose first or second surname equals
// term, ignoring case. The result is empty, not nil, when nothing matches.
func (s *Store) FindBySurname(term string) []*model.Student {
	fold := cases.Fold()
	want := fold.String(term)
	out := []*model.Student{}
	for _, st := range s.students {
		if fold.String(st.LastSurname) == want || fold.String(st.SecondSurname) == want {
			out = append(out, st)
		}
	}
	return out
}

// SampleRandom reranks and returns up to n students in random order.
func (s *Store) SampleRandom(n int) ([]*model.Student, error) {
	if n <= 0 {
		return nil, model.InvalidInput("store.SampleRandom", "sample size must be positive, got %d", n)
	}
	s.rerank()
	out := slices.Clone(s.students)
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out[:min(n, len(out))], nil
}

// Top reranks and returns the n best-ranked students.
func (s *Store) Top(n int) ([]*model.Student, error) {
	if n <= 0 {
		return nil, model.InvalidInput("store.Top", "report size must be positive, got %d", n)
	}
	s.rerank()
	return ranking.Top(s.students, n), nil
}

// Ranked reranks and returns the whole population in rank order.
func (s *Store) Ranked() []*model.Student {
	s.rerank()
	return ranking.Sorted(s.students)
}

// Rerank recomputes every rank. Mutating methods already call it.
func (s *Store) Rerank() {
	s.rerank()
}

func (s *Store) rerank() {
	ranking.Rerank(s.students)
}
