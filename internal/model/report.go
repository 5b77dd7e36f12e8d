package model

// AyahAudit is the auditor's finding for one surah
type AyahAudit struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Count int    `json:"count"`           // Ayah entries present
	First int    `json:"first,omitempty"` // Number of the first entry (0 when empty)
	Last  int    `json:"last,omitempty"`  // Number of the last entry (0 when empty)
}

// MissingAyahs reports whether the last recorded number exceeds the entries present
func (a AyahAudit) MissingAyahs() bool {
	return a.Count > 0 && a.Last > a.Count
}

// TruncatedToFive flags the known truncation bug: exactly five entries while
// the numbering runs past five
func (a AyahAudit) TruncatedToFive() bool {
	return a.Count == 5 && a.Last > 5
}

// SurahCount compares a surah's ayah entries against its reference count
type SurahCount struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Current int    `json:"current"`
	Actual  int    `json:"actual"`
}

// Deficit records a surah that has fewer ayahs than its reference count
type Deficit struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Missing int    `json:"missing"`
	Current int    `json:"current"`
	Actual  int    `json:"actual"`
}

// SurahVocab holds the vocabulary tallies for one surah
type SurahVocab struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Questions int    `json:"questions"`
	AyahWords int    `json:"ayah_words"`
}

// Total is the combined number of vocabulary items in the surah
func (v SurahVocab) Total() int {
	return v.Questions + v.AyahWords
}

// VocabReport aggregates SurahVocab rows with running totals
type VocabReport struct {
	Surahs         []SurahVocab `json:"surahs"`
	TotalQuestions int          `json:"total_questions"`
	TotalAyahWords int          `json:"total_ayah_words"`
	TotalItems     int          `json:"total_items"`
}
