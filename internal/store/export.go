package store

import "github.com/pavelanni/meritrank/internal/model"

// ExportRanking reranks and builds one export row per student, best rank first.
func (s *Store) ExportRanking() []model.RankingRow {
	ranked := s.Ranked()
	rows := make([]model.RankingRow, 0, len(ranked))
	for _, st := range ranked {
		rows = append(rows, model.NewRankingRow(st))
	}
	return rows
}
