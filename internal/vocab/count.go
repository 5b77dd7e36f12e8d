// Package vocab tallies the vocabulary entries of a dataset.
package vocab

import "github.com/ben-kodbiz/quranlingo/internal/model"

// UnknownTitle is reported for surahs without a title
const UnknownTitle = "Unknown"

// Count tallies question entries and ayah words per surah and keeps running
// totals across the dataset
func Count(ds *model.Dataset) model.VocabReport {
	report := model.VocabReport{Surahs: make([]model.SurahVocab, 0, len(ds.Surahs))}

	for _, s := range ds.Surahs {
		row := model.SurahVocab{
			ID:        s.ID,
			Title:     s.Title,
			Questions: len(s.Questions),
		}
		if row.Title == "" {
			row.Title = UnknownTitle
		}
		for _, ayah := range s.Ayahs {
			row.AyahWords += len(ayah.Words)
		}

		report.TotalQuestions += row.Questions
		report.TotalAyahWords += row.AyahWords
		report.TotalItems += row.Total()
		report.Surahs = append(report.Surahs, row)
	}

	return report
}
