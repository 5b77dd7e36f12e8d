// Package dataset loads surah dataset files and walks the Arabic words they
// reference.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ben-kodbiz/quranlingo/internal/model"
	"github.com/ben-kodbiz/quranlingo/internal/util"
)

// ErrNotFound is returned when a surah id is not present in the dataset
var ErrNotFound = errors.New("surah not found")

// Load reads and decodes a dataset file. Absent ayahs, words and questions
// decode as empty slices.
func Load(path string) (*model.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var ds model.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return &ds, nil
}

// Find returns the surah with the given id
func Find(ds *model.Dataset, id string) (*model.Surah, error) {
	for i := range ds.Surahs {
		if ds.Surahs[i].ID == id {
			return &ds.Surahs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Entries lists every word a surah references, ayah words first and then
// question entries. Duplicates are kept; entries without Arabic text are
// skipped and Arabic text is normalized.
func Entries(s *model.Surah) []model.Word {
	var words []model.Word
	for _, ayah := range s.Ayahs {
		for _, w := range ayah.Words {
			if entry, ok := normalized(w); ok {
				words = append(words, entry)
			}
		}
	}
	for _, q := range s.Questions {
		if entry, ok := normalized(q); ok {
			words = append(words, entry)
		}
	}
	return words
}

// WordSet returns the distinct Arabic words a surah references
func WordSet(s *model.Surah) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range Entries(s) {
		set[w.Arabic] = struct{}{}
	}
	return set
}

// UniqueWords returns every distinct Arabic word in the dataset in order of
// first appearance
func UniqueWords(ds *model.Dataset) []string {
	seen := make(map[string]bool)
	var words []string
	for i := range ds.Surahs {
		for _, w := range Entries(&ds.Surahs[i]) {
			if !seen[w.Arabic] {
				seen[w.Arabic] = true
				words = append(words, w.Arabic)
			}
		}
	}
	return words
}

func normalized(w model.Word) (model.Word, bool) {
	w.Arabic = util.NormalizeKey(w.Arabic)
	if w.Arabic == "" {
		return w, false
	}
	w.MeaningMY = w.LocalMeaning()
	return w, true
}
