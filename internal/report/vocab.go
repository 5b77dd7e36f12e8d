package report

import (
	"io"

	"github.com/ben-kodbiz/quranlingo/internal/model"
)

// Vocab writes the per-surah tallies followed by the dataset totals
func Vocab(w io.Writer, r model.VocabReport) error {
	p := &printer{w: w}
	for _, s := range r.Surahs {
		p.printf("Surah: %s\n", s.Title)
		p.printf("  Questions: %d\n", s.Questions)
		p.printf("  Ayah Words: %d\n", s.AyahWords)
		p.printf("  Total: %d\n", s.Total())
		p.println()
	}

	p.printf("Total questions: %d\n", r.TotalQuestions)
	p.printf("Total ayah words: %d\n", r.TotalAyahWords)
	p.printf("Total vocabulary items: %d\n", r.TotalItems)
	return p.err
}
