// Package charset converts between raw bytes and Go strings under a named
// IANA character set. It loads the full encoding tables provided by
// golang.org/x/text, which makes compiled binaries considerably larger, but
// also lets this code decode pretty much any character set it might
// encounter in the wild wild world of email.
//
// Conversions take a Policy. Strict reports an error for byte sequences that
// are not valid in the character set or for text the character set cannot
// represent. Replace substitutes a replacement character instead and never
// fails. The x/text decoders signal invalid input by emitting U+FFFD rather
// than returning an error, so strict decoding reports ErrInvalidBytes when a
// replacement character appears in the output that the input did not itself
// encode.
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

var (
	// ErrUnknown is returned when no encoding is registered for a
	// character set name.
	ErrUnknown = errors.New("unknown character set")

	// ErrInvalidBytes is returned by Decode under the Strict policy when
	// the input is not a valid byte sequence in the character set.
	ErrInvalidBytes = errors.New("byte sequence is not valid in character set")

	// ErrInvalidRunes is returned by Encode under the Strict policy when
	// the text cannot be represented in the character set.
	ErrInvalidRunes = errors.New("text cannot be encoded in character set")
)

// Policy selects how conversion errors are handled.
type Policy int

const (
	// Strict fails on any byte sequence or rune the character set cannot
	// represent.
	Strict Policy = iota

	// Replace substitutes a replacement character and never fails.
	Replace
)

const replacement = '�'

// Decode converts raw bytes in the named character set to a string.
func Decode(name string, b []byte, policy Policy) (string, error) {
	switch canonical(name) {
	case "us-ascii", "ascii", "ansi_x3.4-1968", "iso-ir-6", "us":
		return decodeASCII(name, b, policy)
	case "utf-8", "utf8":
		return decodeUTF8(name, b, policy)
	}

	e, err := lookup(name)
	if err != nil {
		return "", err
	}

	s, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidBytes, name, err)
	}

	if policy == Strict && bytes.ContainsRune(s, replacement) {
		// some character sets can encode U+FFFD themselves (GB18030 for
		// one); only a replacement the input could not have carried
		// signals invalid bytes
		raw, rerr := e.NewEncoder().Bytes([]byte(string(replacement)))
		if rerr != nil || !bytes.Contains(b, raw) {
			return "", fmt.Errorf("%w %q", ErrInvalidBytes, name)
		}
	}

	return string(s), nil
}

// Encode converts a string to raw bytes in the named character set.
func Encode(name string, s string, policy Policy) ([]byte, error) {
	switch canonical(name) {
	case "us-ascii", "ascii", "ansi_x3.4-1968", "iso-ir-6", "us":
		return encodeASCII(name, s, policy)
	case "utf-8", "utf8":
		return encodeUTF8(name, s, policy)
	}

	e, err := lookup(name)
	if err != nil {
		return nil, err
	}

	enc := e.NewEncoder()
	if policy == Replace {
		enc = encoding.ReplaceUnsupported(enc)
	}

	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidRunes, name, err)
	}

	return b, nil
}

// lookup resolves a character set name against the MIME index first and
// falls back to the full IANA table, which covers names the MIME index
// declines to map.
func lookup(name string) (encoding.Encoding, error) {
	e, err := ianaindex.MIME.Encoding(name)
	if err != nil || e == nil {
		e, err = ianaindex.IANA.Encoding(name)
	}
	if err != nil || e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return e, nil
}

func canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// The x/text index maps US-ASCII and UTF-8 to no transformer at all, so both
// get explicit treatment here.

func decodeASCII(name string, b []byte, policy Policy) (string, error) {
	clean := true
	for _, c := range b {
		if c >= 0x80 {
			clean = false
			break
		}
	}
	if clean {
		return string(b), nil
	}
	if policy == Strict {
		return "", fmt.Errorf("%w %q", ErrInvalidBytes, name)
	}

	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if c < 0x80 {
			sb.WriteByte(c)
		} else {
			sb.WriteRune(replacement)
		}
	}
	return sb.String(), nil
}

func encodeASCII(name, s string, policy Policy) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x80 {
			out = append(out, byte(r))
			continue
		}
		if policy == Strict {
			return nil, fmt.Errorf("%w %q: %q", ErrInvalidRunes, name, r)
		}
		out = append(out, '?')
	}
	return out, nil
}

func decodeUTF8(name string, b []byte, policy Policy) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}
	if policy == Strict {
		return "", fmt.Errorf("%w %q", ErrInvalidBytes, name)
	}
	return string(bytes.ToValidUTF8(b, []byte(string(replacement)))), nil
}

func encodeUTF8(name, s string, policy Policy) ([]byte, error) {
	if utf8.ValidString(s) {
		return []byte(s), nil
	}
	if policy == Strict {
		return nil, fmt.Errorf("%w %q", ErrInvalidRunes, name)
	}
	return []byte(strings.ToValidUTF8(s, string(replacement))), nil
}
