// Package audit inspects the ayah entries of a dataset: numbering sanity and
// counts against known surah lengths.
package audit

import "github.com/ben-kodbiz/quranlingo/internal/model"

// Audit reports, for every surah, how many ayah entries are present and the
// numbers of the first and last entry
func Audit(ds *model.Dataset) []model.AyahAudit {
	audits := make([]model.AyahAudit, 0, len(ds.Surahs))
	for _, s := range ds.Surahs {
		a := model.AyahAudit{
			ID:    s.ID,
			Title: s.Title,
			Count: len(s.Ayahs),
		}
		if a.Count > 0 {
			a.First = s.Ayahs[0].Number
			a.Last = s.Ayahs[a.Count-1].Number
		}
		audits = append(audits, a)
	}
	return audits
}
