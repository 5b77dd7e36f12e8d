package util

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// WhitespaceFolder trims leading and trailing whitespace and collapses every
// internal whitespace run into a single ASCII space
type WhitespaceFolder struct {
	started bool // a non-space rune has been emitted
	pending bool // inside a whitespace run that follows emitted text
}

// Transform implements transform.Transformer
func (w *WhitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(r) {
			nSrc += size
			if w.started {
				w.pending = true
			}
			continue
		}

		need := utf8.RuneLen(r)
		if need < 0 {
			need = utf8.RuneLen(utf8.RuneError)
		}
		if w.pending {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		if w.pending {
			dst[nDst] = ' '
			nDst++
			w.pending = false
		}
		w.started = true
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
	}
	return nDst, nSrc, nil
}

// Reset implements transform.Transformer
func (w *WhitespaceFolder) Reset() {
	*w = WhitespaceFolder{}
}

// FoldSpace collapses whitespace runs in s and trims both ends
func FoldSpace(s string) string {
	out, _, err := transform.String(&WhitespaceFolder{}, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeKey canonicalizes an Arabic word for use as a lookup key: NFC
// composition (so differently ordered diacritics compare equal) followed by
// whitespace folding
func NormalizeKey(s string) string {
	out, _, err := transform.String(transform.Chain(norm.NFC, &WhitespaceFolder{}), s)
	if err != nil {
		return s
	}
	return out
}
