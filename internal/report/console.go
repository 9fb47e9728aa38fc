package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pavelanni/meritrank/internal/catalog"
	"github.com/pavelanni/meritrank/internal/i18n"
	"github.com/pavelanni/meritrank/internal/model"
)

const (
	heavyRule = "=================================================="
	lightRule = "--------------------------------------------------"
)

func banner(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w, "  "+title)
	fmt.Fprintln(w, heavyRule)
}

// PrintStudents prints one line per student: rank, account, name, semester
// and indicator.
func PrintStudents(ctx context.Context, w io.Writer, students []*model.Student) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		i18n.T(ctx, "ColRank"),
		i18n.T(ctx, "ColAccount"),
		i18n.T(ctx, "ColName"),
		i18n.T(ctx, "ColSemester"),
		i18n.T(ctx, "ColIndicator"),
	)
	for _, st := range students {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\n", st.FinalRank, st.AccountID, st.FullName(), st.Semester, st.RawIndicator)
	}
	return tw.Flush()
}

// PrintTop prints the top-ranked students under a banner.
func PrintTop(ctx context.Context, w io.Writer, students []*model.Student) error {
	if len(students) == 0 {
		fmt.Fprintln(w, i18n.T(ctx, "NoStudents"))
		return nil
	}
	banner(w, i18n.Td(ctx, "TopTitle", map[string]any{"Count": len(students)}))
	if err := PrintStudents(ctx, w, students); err != nil {
		return err
	}
	fmt.Fprintln(w, heavyRule)
	return nil
}

// PrintSample prints a random selection in the order drawn.
func PrintSample(ctx context.Context, w io.Writer, students []*model.Student) error {
	if len(students) == 0 {
		fmt.Fprintln(w, i18n.T(ctx, "NoStudents"))
		return nil
	}
	banner(w, i18n.Tp(ctx, "SampleTitle", len(students)))
	if err := PrintStudents(ctx, w, students); err != nil {
		return err
	}
	fmt.Fprintln(w, heavyRule)
	return nil
}

// PrintSearch prints the outcome of a surname search.
func PrintSearch(ctx context.Context, w io.Writer, term string, students []*model.Student) error {
	if len(students) == 0 {
		fmt.Fprintln(w, i18n.Td(ctx, "SearchNone", map[string]any{"Term": term}))
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== "+i18n.Tp(ctx, "SearchTitle", len(students))+" ===")
	return PrintStudents(ctx, w, students)
}

// PrintRecord prints a student's record card: personal data, rank, indicator,
// courses with grades, total credits and average.
func PrintRecord(ctx context.Context, w io.Writer, st *model.Student) error {
	banner(w, i18n.T(ctx, "CardTitle"))

	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	field := func(id string, v any) {
		fmt.Fprintf(tw, "%s:\t%v\n", i18n.T(ctx, id), v)
	}
	field("CardStudent", st.FullName())
	field("CardAccount", st.AccountID)
	field("CardAge", st.Age)
	field("CardProgram", st.Program)
	field("CardSemester", st.Semester)
	field("CardAddress", st.Address)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, lightRule)
	if st.IsRanked() {
		fmt.Fprintf(w, "%s: %d\n", i18n.T(ctx, "CardRank"), st.FinalRank)
	} else {
		fmt.Fprintf(w, "%s: %s\n", i18n.T(ctx, "CardRank"), i18n.T(ctx, "CardRankPending"))
	}
	fmt.Fprintf(w, "%s: %d\n", i18n.T(ctx, "CardIndicator"), st.RawIndicator)
	fmt.Fprintln(w, lightRule)

	fmt.Fprintln(w, "  "+i18n.T(ctx, "CardCourses"))
	var (
		enrollments []model.Enrollment
		credits     int
		average     float64
	)
	if st.Record != nil {
		enrollments = st.Record.Enrollments()
		credits = st.Record.TotalCredits()
		average = st.Record.Average()
	}
	if len(enrollments) == 0 {
		fmt.Fprintln(w, i18n.T(ctx, "CardNoCourses"))
	}
	grade, creditsLabel := i18n.T(ctx, "CardGrade"), i18n.T(ctx, "CardCredits")
	for _, e := range enrollments {
		fmt.Fprintf(w, "- %s (%d %s) | %s: %.1f\n", e.Course.Name, e.Course.Credits, creditsLabel, grade, e.Grade)
	}

	fmt.Fprintln(w, lightRule)
	fmt.Fprintf(w, "%s: %d\n", i18n.T(ctx, "CardTotalCredits"), credits)
	fmt.Fprintf(w, "%s: %.2f\n", i18n.T(ctx, "CardAverage"), average)
	fmt.Fprintln(w, heavyRule)
	return nil
}

// PrintCatalog lists every course grouped by semester.
func PrintCatalog(ctx context.Context, w io.Writer, c *catalog.Catalog) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, i18n.T(ctx, "CatalogTitle"))
	creditsLabel := i18n.T(ctx, "CardCredits")
	for s := 1; s <= c.Semesters(); s++ {
		bucket := c.Bucket(s)
		if len(bucket) == 0 {
			continue
		}
		title := i18n.Td(ctx, "CatalogSemester", map[string]any{"Semester": s})
		fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
		for _, course := range bucket {
			fmt.Fprintf(w, "%2d. %s (%d %s)\n", course.ID, course.Name, course.Credits, creditsLabel)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, i18n.Tp(ctx, "CatalogTotal", c.Len()))
	return nil
}
