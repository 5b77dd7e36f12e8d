package report

import (
	"io"

	"github.com/ben-kodbiz/quranlingo/internal/audit"
	"github.com/ben-kodbiz/quranlingo/internal/model"
)

// Audit writes one block per surah with its ayah count, numbering range and
// warnings
func Audit(w io.Writer, audits []model.AyahAudit) error {
	p := &printer{w: w}
	for _, a := range audits {
		p.printf("Surah: %s\n", a.Title)
		p.printf("  Ayahs: %d\n", a.Count)
		if a.Count > 0 {
			p.printf("  First ayah number: %d\n", a.First)
			p.printf("  Last ayah number: %d\n", a.Last)
			if a.MissingAyahs() {
				p.printf("  WARNING: Missing ayahs! Last number is %d but only %d ayahs present.\n", a.Last, a.Count)
			}
			if a.TruncatedToFive() {
				p.printf("  WARNING: Only 5 ayahs present but surah has more!\n")
			}
		}
		p.println()
	}
	return p.err
}

// Reconcile writes the current and true ayah counts of every checked surah
// followed by a summary of the deficits
func Reconcile(w io.Writer, r audit.Reconciliation) error {
	p := &printer{w: w}
	for _, c := range r.Checked {
		p.printf("Surah: %s\n", c.Title)
		p.printf("  Current ayahs: %d\n", c.Current)
		p.printf("  Actual ayahs: %d\n", c.Actual)
		if c.Current < c.Actual {
			p.printf("  MISSING: %d ayahs\n", c.Actual-c.Current)
		}
		p.println()
	}

	p.printf("\nSummary of Missing Ayahs:\n")
	for _, d := range r.Deficits {
		p.printf("%s: Missing %d ayahs (has %d, should have %d)\n", d.Title, d.Missing, d.Current, d.Actual)
	}
	return p.err
}
