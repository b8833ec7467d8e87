package align

import (
	"strings"
	"unicode"
)

// phonemeTable maps single letters to simplified phoneme symbols.
// This is a coarse grapheme-to-phoneme table, not a pronouncing dictionary;
// vowels collapse to canonical vowel symbols and a few consonants map to
// their phonetic equivalents (c→k, q→k, x→ks).
var phonemeTable = map[rune]string{
	'a': "aa", 'e': "eh", 'i': "ih", 'o': "oh", 'u': "uh",
	'b': "b", 'c': "k", 'd': "d", 'f': "f", 'g': "g",
	'h': "hh", 'j': "jh", 'k': "k", 'l': "l", 'm': "m",
	'n': "n", 'p': "p", 'q': "k", 'r': "r", 's': "s",
	't': "t", 'v': "v", 'w': "w", 'x': "ks", 'y': "y", 'z': "z",
}

// Silence is the marker symbol inserted at word boundaries.
const Silence = "sil"

// ExpandPhonemes converts text into an ordered phoneme sequence.
// A Silence marker precedes each word and one trailing Silence closes the
// sequence. Non-letter characters are dropped; letters outside the table
// (accented or non-Latin) map to themselves. Empty input yields the single
// trailing Silence.
func ExpandPhonemes(text string) []string {
	words := strings.Fields(strings.ToLower(text))

	phonemes := make([]string, 0, len(text)+len(words)+1)
	for _, word := range words {
		phonemes = append(phonemes, Silence)
		for _, r := range word {
			if !unicode.IsLetter(r) {
				continue
			}
			if p, ok := phonemeTable[r]; ok {
				phonemes = append(phonemes, p)
			} else {
				phonemes = append(phonemes, string(r))
			}
		}
	}
	return append(phonemes, Silence)
}
