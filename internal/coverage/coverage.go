// Package coverage measures how much of a surah's vocabulary a glossary
// already defines.
package coverage

import (
	"sort"
	"strings"

	"github.com/ben-kodbiz/quranlingo/internal/dataset"
	"github.com/ben-kodbiz/quranlingo/internal/glossary"
	"github.com/ben-kodbiz/quranlingo/internal/model"
)

// DefaultThreshold is the percentage at or above which a surah is complete
const DefaultThreshold = 90.0

// Status labels
const (
	StatusComplete    = "Complete"
	StatusNeedsFixing = "Needs fixing"
	StatusNoWords     = "No words found"
)

// Coverage counts covered words out of a total
type Coverage struct {
	Total   int `json:"total"`
	Covered int `json:"covered"`
}

// Percent returns covered/total*100. ok is false when there is nothing to
// cover.
func (c Coverage) Percent() (pct float64, ok bool) {
	if c.Total == 0 {
		return 0, false
	}
	return float64(c.Covered) / float64(c.Total) * 100, true
}

// Status classifies the coverage against threshold
func (c Coverage) Status(threshold float64) string {
	pct, ok := c.Percent()
	switch {
	case !ok:
		return StatusNoWords
	case pct >= threshold:
		return StatusComplete
	default:
		return StatusNeedsFixing
	}
}

// WordReport is the per-word view of one surah: every referenced entry,
// duplicates included, split by whether the glossary defines it
type WordReport struct {
	Surah   model.Surah
	Covered []model.Word
	Missing []model.Word
}

// Coverage returns the entry counts of the report
func (r WordReport) Coverage() Coverage {
	return Coverage{Total: len(r.Covered) + len(r.Missing), Covered: len(r.Covered)}
}

// CheckSurah classifies each word entry of s as covered or missing
func CheckSurah(s *model.Surah, g glossary.Glossary) WordReport {
	r := WordReport{Surah: *s}
	for _, w := range dataset.Entries(s) {
		if g.Has(w.Arabic) {
			r.Covered = append(r.Covered, w)
		} else {
			r.Missing = append(r.Missing, w)
		}
	}
	return r
}

// SurahCoverage is the per-surah view over distinct words
type SurahCoverage struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Coverage Coverage `json:"coverage"`
	Missing  []string `json:"missing_words,omitempty"` // Sorted
}

// Options tune Analyze
type Options struct {
	Threshold float64  // Zero means DefaultThreshold
	SkipIDs   []string // Lessons that are not surahs
}

// Analysis is the per-surah coverage table of a dataset
type Analysis struct {
	Threshold float64
	Surahs    []SurahCoverage
}

// Analyze computes coverage of the distinct words of every surah
func Analyze(ds *model.Dataset, g glossary.Glossary, opts Options) Analysis {
	a := Analysis{Threshold: opts.Threshold}
	if a.Threshold == 0 {
		a.Threshold = DefaultThreshold
	}

	skip := make(map[string]bool, len(opts.SkipIDs))
	for _, id := range opts.SkipIDs {
		skip[id] = true
	}

	for i := range ds.Surahs {
		s := &ds.Surahs[i]
		if skip[s.ID] {
			continue
		}

		row := SurahCoverage{ID: s.ID, Title: s.Title}
		if row.ID == "" {
			row.ID = "unknown"
		}
		if row.Title == "" {
			row.Title = "Unknown Surah"
		}

		words := dataset.WordSet(s)
		row.Coverage.Total = len(words)
		for w := range words {
			if g.Has(w) {
				row.Coverage.Covered++
			} else {
				row.Missing = append(row.Missing, w)
			}
		}
		sort.Strings(row.Missing)
		a.Surahs = append(a.Surahs, row)
	}
	return a
}

// NeedsFixing returns the surahs with words that fall below the threshold
func (a Analysis) NeedsFixing() []SurahCoverage {
	var out []SurahCoverage
	for _, s := range a.Surahs {
		if s.Coverage.Status(a.Threshold) == StatusNeedsFixing {
			out = append(out, s)
		}
	}
	return out
}

// Detail returns the first surah needing fixes whose id contains substr,
// case-insensitively
func (a Analysis) Detail(substr string) (SurahCoverage, bool) {
	if substr == "" {
		return SurahCoverage{}, false
	}
	substr = strings.ToLower(substr)
	for _, s := range a.NeedsFixing() {
		if strings.Contains(strings.ToLower(s.ID), substr) {
			return s, true
		}
	}
	return SurahCoverage{}, false
}
