package model

// Dataset is the top-level document of a surah dataset file
type Dataset struct {
	Surahs []Surah `json:"surahs"`
}

// Surah is one lesson entry of the dataset (usually a chapter of the Quran)
type Surah struct {
	ID        string     `json:"id"`                  // Slug, e.g. "al-fatihah"
	Title     string     `json:"title"`               // Display title
	Ayahs     []Ayah     `json:"ayahs,omitempty"`     // Ordered verses
	Questions []Question `json:"questions,omitempty"` // Vocabulary quiz entries
}

// Ayah is a verse within a surah
type Ayah struct {
	Number      int    `json:"number"`                // 1-based position, as recorded in the data
	Text        string `json:"text,omitempty"`        // Full Arabic text
	Translation string `json:"translation,omitempty"` // English rendering of the verse
	Words       []Word `json:"words,omitempty"`       // Word-by-word breakdown
}

// Word is a single Arabic word with its glosses
type Word struct {
	Arabic    string `json:"arabic"`               // Source text, used as the glossary key
	Meaning   string `json:"meaning"`              // Default gloss
	MeaningMY string `json:"meaning_my,omitempty"` // Localized gloss
}

// LocalMeaning returns the localized gloss, falling back to the default one
func (w Word) LocalMeaning() string {
	if w.MeaningMY != "" {
		return w.MeaningMY
	}
	return w.Meaning
}

// Question is a vocabulary entry attached to a surah; it carries the same
// fields as an ayah word
type Question = Word
