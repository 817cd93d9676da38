package flowed

import (
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Decode decodes flowed bytes into chunks using the default decoder
// configuration. Use NewDecoder for control over DelSp and the character
// set.
func Decode(flowed []byte) ([]Chunk, error) {
	return NewDecoder().DecodeAll(flowed)
}

// Encode converts chunks to flowed bytes using the default encoder
// configuration. Use NewEncoder for control over the width, character set,
// stuffing, and extra flow spaces.
func Encode(chunks []Chunk) ([]byte, error) {
	return NewEncoder().Encode(chunks)
}

// ToWrapped decodes flowed bytes and renders them as display text wrapped to
// the given width, suitable for a fixed-width plain text display. Quote
// depth is shown by repeating quote in front of each line; when quote does
// not already end in a space, one is added between the markers and the text.
// Fixed chunks are wrapped to width as well, with hard breaks for words
// exceeding the line width, unless wrapFixed is false. Lines are joined with
// a bare newline, since this output is for display rather than the wire.
//
// A nil d uses the default decoder configuration.
func ToWrapped(flowed []byte, width int, quote string, wrapFixed bool, d *Decoder) (string, error) {
	if d == nil {
		d = NewDecoder()
	}

	var out []string
	sc := d.Decode(flowed)
	for sc.Scan() {
		c := sc.Chunk()

		marker := ""
		if c.QuoteDepth > 0 {
			marker = strings.Repeat(quote, c.QuoteDepth)
			if !strings.HasSuffix(quote, " ") {
				marker += " "
			}
		}

		switch {
		case c.Kind == Fixed && !wrapFixed:
			out = append(out, marker+c.Text)
		case c.Text == "" || c.Kind == SignatureSeparator:
			out = append(out, marker+c.Text)
		default:
			w := width - utf8.RuneCountInString(marker)
			if w < 1 {
				w = 1
			}
			wrapped := wrap.String(wordwrap.String(c.Text, w), w)
			for _, ln := range strings.Split(wrapped, "\n") {
				out = append(out, marker+strings.TrimRight(ln, " "))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}

	return strings.Join(out, "\n"), nil
}

// ToFlowed converts plain text to format=flowed bytes by running ParseText
// over it and encoding the resulting chunks. quoteChars is the set of
// characters recognized as quote markers; the empty string means
// DefaultQuoteChars.
//
// A nil e uses the default encoder configuration.
func ToFlowed(text, quoteChars string, e *Encoder) ([]byte, error) {
	if e == nil {
		e = NewEncoder()
	}

	chunks, err := ParseText(text, quoteChars).collect()
	if err != nil {
		return nil, err
	}
	return e.Encode(chunks)
}
