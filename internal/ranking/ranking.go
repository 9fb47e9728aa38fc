// Package ranking orders the student population by merit and assigns dense ranks.
package ranking

import (
	"cmp"
	"slices"

	"github.com/pavelanni/meritrank/internal/model"
)

// Compare orders a before b when a has the higher indicator, falling back to
// ascending first surname on exact ties.
func Compare(a, b *model.Student) int {
	if c := cmp.Compare(b.RawIndicator, a.RawIndicator); c != 0 {
		return c
	}
	return cmp.Compare(a.LastSurname, b.LastSurname)
}

// Rerank sorts a copy of students and writes FinalRank 1..N onto each of them.
// The sort is stable, so full ties keep their input order. The input slice
// itself is left in its original order.
func Rerank(students []*model.Student) {
	if len(students) == 0 {
		return
	}
	ordered := slices.Clone(students)
	slices.SortStableFunc(ordered, Compare)
	for i, s := range ordered {
		s.FinalRank = i + 1
	}
}

// Sorted returns a copy of students ordered by FinalRank.
func Sorted(students []*model.Student) []*model.Student {
	out := slices.Clone(students)
	slices.SortStableFunc(out, func(a, b *model.Student) int {
		return cmp.Compare(a.FinalRank, b.FinalRank)
	})
	return out
}

// Top returns the first n students by rank. n is clamped to the population size.
func Top(students []*model.Student, n int) []*model.Student {
	out := Sorted(students)
	if n < len(out) {
		out = out[:max(n, 0)]
	}
	return out
}

// IsDensePermutation reports whether the ranks of students are exactly 1..N.
func IsDensePermutation(students []*model.Student) bool {
	seen := make([]bool, len(students)+1)
	for _, s := range students {
		if s.FinalRank < 1 || s.FinalRank > len(students) || seen[s.FinalRank] {
			return false
		}
		seen[s.FinalRank] = true
	}
	return true
}
