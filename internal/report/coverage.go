package report

import (
	"fmt"
	"io"

	"github.com/rodaine/table"

	"github.com/ben-kodbiz/quranlingo/internal/coverage"
)

// GlossarySize writes the number of words a glossary defines
func GlossarySize(w io.Writer, size int, source string) error {
	p := &printer{w: w}
	p.printf("Found %d words in %s\n", size, source)
	return p.err
}

// SurahNotFound writes the message for an unknown surah id
func SurahNotFound(w io.Writer, id string) error {
	p := &printer{w: w}
	p.printf("Surah with ID '%s' not found.\n", id)
	return p.err
}

// MissingWords writes the per-word coverage of one surah and lists every
// missing entry with its meanings
func MissingWords(w io.Writer, r coverage.WordReport) error {
	p := &printer{w: w}
	c := r.Coverage()
	p.printf("\nSurah: %s\n", r.Surah.Title)
	p.printf("Total words: %d\n", c.Total)
	p.printf("Covered words: %d\n", c.Covered)
	p.printf("Missing words: %d\n", len(r.Missing))

	if len(r.Missing) > 0 {
		p.printf("\nMissing words:\n")
		for i, word := range r.Missing {
			p.printf("%d. Arabic: %s\n", i+1, word.Arabic)
			p.printf("   Meaning: %s\n", word.Meaning)
			p.printf("   Meaning (MY): %s\n", word.MeaningMY)
			p.println()
		}
	}
	return p.err
}

// Coverage writes the per-surah coverage table, the surahs needing work and,
// when detail matches one of them, its missing words
func Coverage(w io.Writer, a coverage.Analysis, detail string) error {
	p := &printer{w: w}
	p.heading("Surah Coverage Analysis")

	tbl := table.New("Surah", "Words", "Covered", "Coverage %", "Status").WithWriter(w)
	for _, s := range a.Surahs {
		status := s.Coverage.Status(a.Threshold)
		pct, ok := s.Coverage.Percent()
		if !ok {
			tbl.AddRow(s.Title, "N/A", "N/A", "N/A", status)
			continue
		}
		tbl.AddRow(s.Title, s.Coverage.Total, s.Coverage.Covered, fmt.Sprintf("%.1f%%", pct), statusMark(status)+" "+status)
	}
	if p.err == nil {
		tbl.Print()
	}

	p.heading("Surahs Needing Word Meanings")
	for i, s := range a.NeedsFixing() {
		pct, _ := s.Coverage.Percent()
		p.printf("%d. %s - %.1f%% coverage\n", i+1, s.Title, pct)
		p.printf("   Missing %d words out of %d\n", len(s.Missing), s.Coverage.Total)
	}

	if s, ok := a.Detail(detail); ok {
		p.heading(fmt.Sprintf("Surah %s Details", s.Title))
		p.printf("Total words: %d\n", s.Coverage.Total)
		p.printf("Covered words: %d\n", s.Coverage.Covered)
		p.printf("Missing words: %d\n", len(s.Missing))
		p.printf("\nMissing Arabic words:\n")
		for _, word := range s.Missing {
			p.printf("- %s\n", word)
		}
	}
	return p.err
}

func statusMark(status string) string {
	if status == coverage.StatusComplete {
		return "✅"
	}
	return "❌"
}
