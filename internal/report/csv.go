package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pavelanni/meritrank/internal/model"
)

// Name columns are always quoted, numbers never are.
const csvRowFormat = "%d,%d,\"%s\",\"%s\",\"%s\",%d,%d,%d,%.2f,%d,%d\n"

// WriteCSV writes the header and one line per row, in the order given.
func WriteCSV(w io.Writer, rows []model.RankingRow) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, strings.Join(model.RankingHeader, ",")); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(bw, csvRowFormat,
			r.Rank, r.AccountID, r.FullName, r.LastSurname, r.SecondSurname,
			r.Semester, r.Age, r.RawIndicator, r.Average, r.Passed, r.TotalCredits)
		if err != nil {
			return fmt.Errorf("write csv row %d: %w", r.Rank, err)
		}
	}
	return bw.Flush()
}
