// Package flowed converts between RFC 3676 "format=flowed" text and a small
// structured chunk model, and back again.
//
// A format=flowed body is a sequence of CRLF-terminated lines where a
// trailing space on a line marks it as "flowed", meaning a reader should
// join it with the line that follows into a single paragraph and re-wrap
// that paragraph to whatever width suits its display. Lines without the
// trailing space are "fixed" and keep their breaks. Quoting is expressed
// with leading '>' markers, and a leading space may be "stuffed" onto a line
// to keep its first character from being misread as a quote marker or an
// mbox From line.
//
// The Decoder turns a flowed byte stream into Chunk values, each tagged as a
// Paragraph, a Fixed line, or the "-- " SignatureSeparator, along with the
// quote depth the chunk was found at. The Encoder performs the reverse,
// wrapping paragraphs at a configured width, re-applying quote markers,
// space-stuffing and flow spaces, and enforcing the RFC 5322 hard limit of
// 998 bytes per line. ParseText applies a best-effort heuristic that breaks
// ordinary plain text into the same chunk model so it can be encoded as
// flowed, and ToWrapped renders flowed bytes back into display text at a
// chosen width.
//
// Everything here operates on in-memory buffers. This package does not parse
// MIME, does not inspect Content-Type parameters, and performs no I/O. It is
// the caller's job to locate a text/plain; format=flowed body and to carry
// over DelSp and the character set from the MIME parameters; those two
// settings map onto the Decoder and Encoder configuration directly.
//
// Decoder and Encoder values carry only configuration that is never touched
// during a conversion, so a single instance may be shared across goroutines
// running independent conversions.
package flowed
