// Package flowwrap implements the greedy word wrapper used to produce
// flowed paragraph lines. It differs from a general-purpose wrapper in how
// it treats whitespace: when the encoder is adding extra flow spaces (the
// DelSp convention), whitespace at line boundaries carries reconstruction
// meaning and must survive, and words may be broken mid-token because the
// added flow space can be deleted again on decode without losing the word
// boundary. Without extra spaces, breaks may only happen at whitespace and
// an over-wide token is left whole on its own line, since cutting it would
// be unrecoverable on decode.
package flowwrap

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var spaceRun = regexp.MustCompile(`\s+`)

// Wrap greedily packs text into lines of at most width runes. The
// concatenation of the returned lines, with a flow space inserted after each
// line but the last, reconstructs the text. Empty input yields a single
// empty line, never zero lines.
func Wrap(text string, width int, extraSpace bool) []string {
	tokens := tokenize(text, extraSpace)

	var lines []string
	i := 0
	for i < len(tokens) {
		// Whitespace at the start of a continuation line is dropped,
		// except in extra-space mode where it is significant.
		if !extraSpace && len(lines) > 0 && isSpace(tokens[i]) {
			i++
		}

		var cur []string
		curLen := 0
		for i < len(tokens) {
			l := utf8.RuneCountInString(tokens[i])
			if curLen+l > width {
				break
			}
			cur = append(cur, tokens[i])
			curLen += l
			i++
		}

		if i < len(tokens) && utf8.RuneCountInString(tokens[i]) > width {
			if extraSpace {
				// Mid-token breaks are recoverable with DelSp,
				// so cut the token to fill the line.
				left := width - curLen
				if width < 1 {
					left = 1
				}
				r := []rune(tokens[i])
				cur = append(cur, string(r[:left]))
				tokens[i] = string(r[left:])
			} else if len(cur) == 0 {
				cur = append(cur, tokens[i])
				i++
			}
		}

		// Trailing whitespace on a produced line is dropped unless the
		// extra flow space depends on it to separate words on decode.
		if !extraSpace && len(cur) > 0 && isSpace(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}

		if len(cur) > 0 {
			lines = append(lines, strings.Join(cur, ""))
		}
	}

	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

func isSpace(tok string) bool {
	return strings.TrimSpace(tok) == ""
}

// tokenize splits text into alternating word and whitespace-run tokens. In
// extra-space mode words are additionally split after hyphen runs, giving
// the wrapper hyphenation points to break at before it resorts to cutting a
// word.
func tokenize(text string, extraSpace bool) []string {
	if text == "" {
		return nil
	}

	var tokens []string
	last := 0
	for _, loc := range spaceRun.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			tokens = appendWord(tokens, text[last:loc[0]], extraSpace)
		}
		tokens = append(tokens, text[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(text) {
		tokens = appendWord(tokens, text[last:], extraSpace)
	}
	return tokens
}

func appendWord(tokens []string, word string, extraSpace bool) []string {
	if !extraSpace {
		return append(tokens, word)
	}

	start := 0
	for i := 0; i < len(word); i++ {
		if word[i] != '-' {
			continue
		}
		j := i
		for j+1 < len(word) && word[j+1] == '-' {
			j++
		}
		if j+1 < len(word) && i > start {
			tokens = append(tokens, word[start:j+1])
			start = j + 1
		}
		i = j
	}
	if start < len(word) {
		tokens = append(tokens, word[start:])
	}
	return tokens
}
