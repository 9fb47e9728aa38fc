package model

import "strings"

// RankingHeader lists the export columns in their fixed order.
var RankingHeader = []string{
	"NumInscripcion",
	"NumCuenta",
	"NombreCompleto",
	"PrimerApellido",
	"SegundoApellido",
	"Semestre",
	"Edad",
	"IndicadorBruto",
	"Promedio",
	"AsignaturasAprobadas",
	"TotalCreditos",
}

// RankingRow is one student's line in a ranking export.
type RankingRow struct {
	Rank          int
	AccountID     int64
	FullName      string
	LastSurname   string
	SecondSurname string
	Semester      int
	Age           int
	RawIndicator  int64
	Average       float64
	Passed        int
	TotalCredits  int
}

// NewRankingRow flattens a ranked student into an export row.
// Commas in the full name become periods so the name stays a single CSV field.
func NewRankingRow(s *Student) RankingRow {
	row := RankingRow{
		Rank:          s.FinalRank,
		AccountID:     s.AccountID,
		FullName:      strings.ReplaceAll(s.FullName(), ",", "."),
		LastSurname:   s.LastSurname,
		SecondSurname: s.SecondSurname,
		Semester:      s.Semester,
		Age:           s.Age,
		RawIndicator:  s.RawIndicator,
	}
	if s.Record != nil {
		row.Average = s.Record.Average()
		row.Passed = s.Record.PassedCount()
		row.TotalCredits = s.Record.TotalCredits()
	}
	return row
}
