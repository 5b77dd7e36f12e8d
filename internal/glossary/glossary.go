// Package glossary reads and writes Arabic -> English meaning tables.
//
// A glossary can come from three kinds of file: the JavaScript source that
// embeds the table as an object literal, the JSON cache written by the
// scraper, or a structured YAML map. Keys are normalized on load so that
// lookups agree with words read from a dataset.
package glossary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ben-kodbiz/quranlingo/internal/util"
)

// Glossary maps an Arabic word to its English meanings
type Glossary map[string][]string

// New returns an empty glossary
func New() Glossary {
	return make(Glossary)
}

// Has reports whether word has an entry
func (g Glossary) Has(word string) bool {
	_, ok := g[util.NormalizeKey(word)]
	return ok
}

// Set replaces the meanings for word
func (g Glossary) Set(word string, meanings []string) {
	g[util.NormalizeKey(word)] = meanings
}

// Keys returns the words in sorted order
func (g Glossary) Keys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Problem describes a glossary entry that fails a lint check
type Problem struct {
	Word   string
	Reason string
}

// Check lints the glossary: every word needs at least one meaning and no
// meaning may be blank
func (g Glossary) Check() []Problem {
	var problems []Problem
	for _, word := range g.Keys() {
		meanings := g[word]
		if len(meanings) == 0 {
			problems = append(problems, Problem{Word: word, Reason: "no meanings"})
			continue
		}
		for i, m := range meanings {
			if strings.TrimSpace(m) == "" {
				problems = append(problems, Problem{Word: word, Reason: fmt.Sprintf("blank meaning at position %d", i+1)})
			}
		}
	}
	return problems
}

func normalize(raw map[string][]string) Glossary {
	g := make(Glossary, len(raw))
	for k, v := range raw {
		key := util.NormalizeKey(k)
		if key == "" {
			continue
		}
		g[key] = append(g[key], v...)
	}
	return g
}
