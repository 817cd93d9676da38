package flowed

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zostay/go-flowed/charset"
	"github.com/zostay/go-flowed/internal/flowwrap"
)

// ErrNarrowWidth is returned when the configured width leaves no room for
// both the quote markers and a minimal line of text.
var ErrNarrowWidth = errors.New("width leaves no room for quoting and text")

// DefaultWidth is the target line width used when none is configured,
// exclusive of the CRLF terminator.
const DefaultWidth = 78

// maxLineBytes is the RFC 5322 hard limit on the length of a physical line,
// excluding the CRLF. Encoded lines beyond it are split unconditionally.
const maxLineBytes = 998

// Encoder converts chunks into format=flowed bytes. The zero value is not
// usable; construct with NewEncoder and adjust the fields before first use.
// An Encoder holds no conversion state, so one instance may be shared freely
// once configured.
type Encoder struct {
	// ExtraSpace inserts a flow space at every line break even when the
	// break did not fall on whitespace. The produced text must then be
	// decoded with DelSp=yes. Use this for text with few spaces to break
	// on.
	ExtraSpace bool

	// Charset names the character set the output bytes are encoded in.
	Charset string

	// Policy selects strict or replacement handling of text that cannot
	// be represented in Charset.
	Policy charset.Policy

	// SpaceStuffQuoted stuffs a space after the quote markers of every
	// quoted line, whether or not the line content requires it. This
	// makes for slightly more readable quoted output.
	SpaceStuffQuoted bool

	// Width is the maximum line width generated for paragraph chunks,
	// excluding the CRLF. Fixed lines may still exceed it.
	Width int
}

// NewEncoder returns an Encoder with the default configuration: us-ascii,
// strict error handling, quoted lines stuffed, width 78.
func NewEncoder() *Encoder {
	return &Encoder{
		Charset:          DefaultCharset,
		SpaceStuffQuoted: true,
		Width:            DefaultWidth,
	}
}

// Encode converts a sequence of chunks into a single flowed byte buffer.
func (e *Encoder) Encode(chunks []Chunk) ([]byte, error) {
	var buf bytes.Buffer
	for _, c := range chunks {
		b, err := e.EncodeChunk(c)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	return buf.Bytes(), nil
}

// EncodeChunk converts one chunk into flowed bytes ending in CRLF. Embedded
// line breaks in the chunk text are treated as whitespace and become single
// spaces, and trailing whitespace is removed, before any wrapping or quoting
// happens. Paragraph chunks are wrapped to Width less the room taken by
// quote markers, stuffing, and the flow space; EncodeChunk returns
// ErrNarrowWidth when nothing is left. A SignatureSeparator ignores the
// chunk text and always writes "-- ".
func (e *Encoder) EncodeChunk(c Chunk) ([]byte, error) {
	text := flatten(c.Text)

	marker, err := charset.Encode(e.Charset, strings.Repeat(">", c.QuoteDepth), e.Policy)
	if err != nil {
		return nil, err
	}
	forceStuff := e.SpaceStuffQuoted && c.QuoteDepth > 0

	if c.Kind == SignatureSeparator {
		text = sigSep
	}

	var wrapped []string
	if c.Kind == Paragraph {
		// reserve room for the stuffing space and the flow space
		width := e.Width - len(marker) - 2
		if width <= 0 {
			return nil, fmt.Errorf("%w: width %d, quote depth %d",
				ErrNarrowWidth, e.Width, c.QuoteDepth)
		}
		wrapped = flowwrap.Wrap(text, width, e.ExtraSpace)
	} else {
		wrapped = []string{text}
	}

	lines := make([][]byte, 0, len(wrapped)+1)
	for i, line := range wrapped {
		if i < len(wrapped)-1 {
			// mark every line but the last as flowed
			line += " "
		}
		line = spaceStuff(line, forceStuff)

		enc, err := charset.Encode(e.Charset, line, e.Policy)
		if err != nil {
			return nil, err
		}

		full := make([]byte, 0, len(marker)+len(enc))
		full = append(full, marker...)
		full = append(full, enc...)

		// The hard limit applies to encoded bytes, so it can only be
		// enforced after encoding; the character count alone could
		// pass while the byte count does not.
		for len(full) > maxLineBytes {
			lines = append(lines, full[:maxLineBytes])
			full = full[maxLineBytes:]
		}
		lines = append(lines, full)
	}

	// the empty tail guarantees a closing CRLF
	lines = append(lines, nil)
	return bytes.Join(lines, []byte(crlf)), nil
}

// flatten joins the lines of text with single spaces and removes trailing
// whitespace.
func flatten(text string) string {
	return strings.Join(splitLines(strings.TrimRightFunc(text, unicode.IsSpace)), " ")
}

// spaceStuff prepends a space to a line whose first character could be
// misread on decode: a space, a quote marker, or the start of an mbox
// "From " marker. The RFC only requires escaping From when unquoted, but
// stuffing is harmless, so it is applied any time a line starts with it.
// Empty lines are never stuffed.
func spaceStuff(line string, force bool) string {
	if line == "" {
		return line
	}
	if force || line[0] == ' ' || line[0] == '>' || strings.HasPrefix(line, "From") {
		return " " + line
	}
	return line
}

// splitLines splits on universal line boundaries: \n, \r, \r\n, vertical
// tab, form feed, the ASCII file/group/record separators, NEL, and the
// Unicode line and paragraph separators. A trailing terminator does not
// produce a final empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch r {
		case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			lines = append(lines, s[start:i])
			i += size
			start = i
		case '\r':
			lines = append(lines, s[start:i])
			i++
			if i < len(s) && s[i] == '\n' {
				i++
			}
			start = i
		default:
			i += size
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
