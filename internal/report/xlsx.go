package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pavelanni/meritrank/internal/model"
)

// SheetName is the worksheet holding the ranking.
const SheetName = "Ranking"

// WriteXLSX writes the ranking as a workbook with a single sheet.
func WriteXLSX(w io.Writer, rows []model.RankingRow) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	header := make([]any, len(model.RankingHeader))
	for i, h := range model.RankingHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(header))
	_ = f.SetCellStyle(SheetName, "A1", last+"1", headerStyle)
	_ = f.SetColWidth(SheetName, "C", "C", 36)
	_ = f.SetColWidth(SheetName, "D", "E", 16)

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			r.Rank, r.AccountID, r.FullName, r.LastSurname, r.SecondSurname,
			r.Semester, r.Age, r.RawIndicator, r.Average, r.Passed, r.TotalCredits,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", r.Rank, err)
		}
	}
	if len(rows) > 0 {
		avgStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
		_ = f.SetCellStyle(SheetName, "I2", fmt.Sprintf("I%d", len(rows)+1), avgStyle)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
