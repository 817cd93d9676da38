package flowed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/zostay/go-flowed/charset"
)

const (
	crlf = "\r\n"

	// sigSep is the signature separator line, after quote markers and
	// stuffing are removed.
	sigSep = "-- "
)

// DefaultCharset is the character set assumed when none is configured. RFC
// 2046 makes us-ascii the default for text/plain bodies.
const DefaultCharset = "us-ascii"

// Decoder converts format=flowed bytes into chunks. The zero value is not
// usable; construct with NewDecoder and adjust the fields before first use.
// A Decoder holds no conversion state, so one instance may be shared freely
// once configured.
type Decoder struct {
	// DeleteSpace strips the trailing flow space from a flowed line
	// before its text is used. It corresponds to the DelSp=yes MIME
	// parameter.
	DeleteSpace bool

	// Charset names the character set the input bytes are encoded in.
	Charset string

	// Policy selects strict or replacement handling of bytes that are
	// not valid in Charset.
	Policy charset.Policy
}

// NewDecoder returns a Decoder with the default configuration: us-ascii,
// strict error handling, DelSp off.
func NewDecoder() *Decoder {
	return &Decoder{Charset: DefaultCharset}
}

// Decode lazily decodes flowed into a sequence of chunks. The returned
// scanner classifies each CRLF-separated physical line, strips quote markers
// and stuffing, and accumulates flowed lines into paragraphs. Paragraphs are
// closed by a fixed line, a signature separator, a change in quote depth, or
// the end of input.
//
// Under a strict Policy, bytes that are not valid in the configured
// character set stop the scan with an error on Err.
func (d *Decoder) Decode(flowed []byte) *ChunkScanner {
	st := &decodeState{
		d:     d,
		lines: bytes.Split(flowed, []byte(crlf)),
	}
	return &ChunkScanner{next: st.next}
}

// DecodeAll decodes flowed into a slice of chunks in one call.
func (d *Decoder) DecodeAll(flowed []byte) ([]Chunk, error) {
	return d.Decode(flowed).collect()
}

// decodeState is the line-classification machine behind Decode. para
// accumulates the paragraph in progress; paraDepth is only meaningful while
// depthSet holds. The queue exists because a single line can force two
// emissions, a flush of the pending paragraph followed by the line's own
// chunk.
type decodeState struct {
	d      *Decoder
	lines  [][]byte
	lineno int

	para      string
	paraDepth int
	depthSet  bool

	queue []Chunk
	eof   bool
}

func (s *decodeState) next() (Chunk, bool, error) {
	for len(s.queue) == 0 {
		if len(s.lines) == 0 {
			if s.eof {
				return Chunk{}, false, nil
			}
			s.eof = true
			if s.para != "" {
				// the input ended on a flowed line
				c := Chunk{Paragraph, s.paraDepth, s.para}
				s.para = ""
				return c, true, nil
			}
			return Chunk{}, false, nil
		}

		raw := s.lines[0]
		s.lines = s.lines[1:]
		s.lineno++

		line, err := charset.Decode(s.d.Charset, raw, s.d.Policy)
		if err != nil {
			return Chunk{}, false, fmt.Errorf("line %d: %w", s.lineno, err)
		}

		s.classify(line)
	}

	c := s.queue[0]
	s.queue = s.queue[1:]
	return c, true, nil
}

func (s *decodeState) classify(line string) {
	depth := 0
	for depth < len(line) && line[depth] == '>' {
		depth++
	}
	line = line[depth:]
	line = stripStuffing(line)

	if line == sigSep {
		if s.para != "" {
			// a flowed line ran straight into the separator
			s.flush()
		}
		s.queue = append(s.queue, Chunk{SignatureSeparator, depth, line})
		return
	}

	if strings.HasSuffix(line, " ") {
		// flowed line; collect into the pending paragraph
		if s.depthSet && depth != s.paraDepth {
			// a quote depth change closes the paragraph, even
			// when nothing has accumulated yet
			s.flush()
		}
		s.para += s.stripFlow(line)
		s.paraDepth = depth
		s.depthSet = true
		return
	}

	// fixed line
	if s.para != "" {
		if s.depthSet && depth != s.paraDepth {
			// the paragraph is flushed unterminated; the fixed
			// line stands on its own at its own depth
			s.flush()
		} else {
			// the fixed line terminates the paragraph and is
			// concatenated into it
			s.queue = append(s.queue, Chunk{Paragraph, s.paraDepth, s.para + line})
			s.para = ""
			s.depthSet = false
			return
		}
	}
	s.queue = append(s.queue, Chunk{Fixed, depth, line})
}

func (s *decodeState) flush() {
	s.queue = append(s.queue, Chunk{Paragraph, s.paraDepth, s.para})
	s.para = ""
	s.depthSet = false
}

// stripStuffing removes at most one leading stuffing space. Additional
// leading spaces are content and are preserved.
func stripStuffing(line string) string {
	if strings.HasPrefix(line, " ") {
		return line[1:]
	}
	return line
}

// stripFlow removes the trailing flow space when DeleteSpace is configured.
// Only the one flow space is removed; any further trailing whitespace is
// content.
func (s *decodeState) stripFlow(line string) string {
	if s.d.DeleteSpace && strings.HasSuffix(line, " ") {
		return line[:len(line)-1]
	}
	return line
}
