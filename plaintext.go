package flowed

import (
	"regexp"
	"strings"
)

// DefaultQuoteChars is the set of characters ParseText recognizes as quote
// markers when none is given.
const DefaultQuoteChars = ">|%"

// whitespace is the cutset used when trimming line edges during plain text
// parsing.
const whitespace = " \t\n\r\v\f"

// ParseText heuristically segments plain text into the chunk model consumed
// by the Encoder, so that ordinary text can be converted to format=flowed.
//
// Runs of lines are collected into paragraphs. A paragraph ends at a blank
// line, an indented line, a signature separator, or any change in quoting.
// Quoting is detected by matching a leading run of quoteChars characters,
// tolerating up to two whitespace characters before or between markers; the
// matched marker string must repeat exactly on following lines to count as
// the same quote. Blank and indented lines become Fixed chunks so their
// spacing survives. A line that is just two dashes, ignoring trailing
// whitespace, becomes a SignatureSeparator.
//
// The paragraph detection is simple by design and is best effort; it
// misclassifies rather than fails on noisy real-world text, and the scanner
// never reports an error.
func ParseText(text, quoteChars string) *ChunkScanner {
	if quoteChars == "" {
		quoteChars = DefaultQuoteChars
	}

	class := regexp.QuoteMeta(quoteChars)
	st := &textState{
		lines:      splitLines(text),
		quoteChars: quoteChars,
		prefix:     regexp.MustCompile(`^\s{0,2}([` + class + `]\s?)+`),
	}
	return &ChunkScanner{next: st.next}
}

type textState struct {
	lines      []string
	quoteChars string
	prefix     *regexp.Regexp

	depth int
	marks string
	para  string

	queue []Chunk
	eof   bool
}

func (s *textState) next() (Chunk, bool, error) {
	for len(s.queue) == 0 {
		if len(s.lines) == 0 {
			if s.eof {
				return Chunk{}, false, nil
			}
			s.eof = true
			if s.para != "" {
				c := Chunk{Paragraph, s.depth, s.para}
				s.para = ""
				return c, true, nil
			}
			return Chunk{}, false, nil
		}

		line := s.lines[0]
		s.lines = s.lines[1:]
		s.classify(line)
	}

	c := s.queue[0]
	s.queue = s.queue[1:]
	return c, true, nil
}

func (s *textState) classify(line string) {
	prefix := s.prefix.FindString(line)
	same := s.marks != "" && strings.HasPrefix(line, s.marks)
	if (prefix != "" && !same) || (prefix == "" && s.depth > 0) {
		// change in quoting; the pending paragraph cannot continue
		s.flush()
		s.marks = prefix
		s.depth = countMarkers(prefix, s.quoteChars)
	}

	line = strings.TrimPrefix(line, s.marks)

	if strings.TrimRight(line, whitespace) == "--" {
		s.flush()
		s.queue = append(s.queue, Chunk{SignatureSeparator, s.depth, line})
		return
	}

	if strings.TrimSpace(line) == "" || strings.TrimLeft(line, whitespace) != line {
		// blank or indented; preserved verbatim as a fixed line
		s.flush()
		s.queue = append(s.queue, Chunk{Fixed, s.depth, line})
		return
	}

	s.para += line
}

func (s *textState) flush() {
	if s.para == "" {
		return
	}
	s.queue = append(s.queue, Chunk{Paragraph, s.depth, s.para})
	s.para = ""
}

// countMarkers counts the quote marker characters in a matched prefix,
// ignoring the whitespace the prefix pattern tolerates around them.
func countMarkers(prefix, quoteChars string) int {
	n := 0
	for _, r := range prefix {
		if strings.ContainsRune(quoteChars, r) {
			n++
		}
	}
	return n
}
