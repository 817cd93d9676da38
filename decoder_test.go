package flowed_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-flowed"
	"github.com/zostay/go-flowed/charset"
)

func crlfJoin(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n"))
}

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	input := crlfJoin(
		">> `Take some more tea,' the March Hare said to Alice, ",
		">> very earnestly.",
		">",
		"> `I've had nothing yet,' Alice replied in an offended ",
		"> tone, `so I can't take more.'",
		"",
		"`You mean you can't take less,' said the Hatter: `it's ",
		"very easy to take more than nothing.'",
		"",
		"-- ",
		"Lewis Carroll",
	)

	chunks, err := flowed.NewDecoder().DecodeAll(input)
	require.NoError(t, err)

	assert.Equal(t, []flowed.Chunk{
		{flowed.Paragraph, 2, "`Take some more tea,' the March Hare said to Alice, very earnestly."},
		{flowed.Fixed, 1, ""},
		{flowed.Paragraph, 1, "`I've had nothing yet,' Alice replied in an offended tone, `so I can't take more.'"},
		{flowed.Fixed, 0, ""},
		{flowed.Paragraph, 0, "`You mean you can't take less,' said the Hatter: `it's very easy to take more than nothing.'"},
		{flowed.Fixed, 0, ""},
		{flowed.SignatureSeparator, 0, "-- "},
		{flowed.Fixed, 0, "Lewis Carroll"},
	}, chunks)
}

func TestDecoder_QuoteDepthChangeClosesParagraph(t *testing.T) {
	t.Parallel()

	input := crlfJoin(
		"> Depth one paragraph with flow space. ",
		">> Depth two paragraph with flow space. ",
		"Depth zero paragraph with fixed line.",
	)

	chunks, err := flowed.NewDecoder().DecodeAll(input)
	require.NoError(t, err)

	assert.Equal(t, []flowed.Chunk{
		{flowed.Paragraph, 1, "Depth one paragraph with flow space. "},
		{flowed.Paragraph, 2, "Depth two paragraph with flow space. "},
		{flowed.Fixed, 0, "Depth zero paragraph with fixed line."},
	}, chunks)
}

func TestDecoder_SignatureSeparatorClosesParagraph(t *testing.T) {
	t.Parallel()

	input := crlfJoin(
		"A paragraph with flow space. ",
		"-- ",
	)

	chunks, err := flowed.NewDecoder().DecodeAll(input)
	require.NoError(t, err)

	assert.Equal(t, []flowed.Chunk{
		{flowed.Paragraph, 0, "A paragraph with flow space. "},
		{flowed.SignatureSeparator, 0, "-- "},
	}, chunks)
}

func TestDecoder_EndOfInputClosesParagraph(t *testing.T) {
	t.Parallel()

	chunks, err := flowed.NewDecoder().DecodeAll([]byte("A paragraph with flow space. "))
	require.NoError(t, err)

	assert.Equal(t, []flowed.Chunk{
		{flowed.Paragraph, 0, "A paragraph with flow space. "},
	}, chunks)
}

func TestDecoder_DeleteSpace(t *testing.T) {
	t.Parallel()

	input := crlfJoin(
		"Contrived example with a word- ",
		"break across the paragraph.",
	)

	d := flowed.NewDecoder()
	d.DeleteSpace = true
	chunks, err := d.DecodeAll(input)
	require.NoError(t, err)

	assert.Equal(t, []flowed.Chunk{
		{flowed.Paragraph, 0, "Contrived example with a word-break across the paragraph."},
	}, chunks)
}

func TestDecoder_DepthChangeFlushesEmptyParagraph(t *testing.T) {
	t.Parallel()

	// a depth change flushes the pending paragraph even when nothing but
	// flow spaces accumulated
	d := flowed.NewDecoder()
	d.DeleteSpace = true
	chunks, err := d.DecodeAll(crlfJoin(
		">  ",
		">> x ",
		"end",
	))
	require.NoError(t, err)

	assert.Equal(t, []flowed.Chunk{
		{flowed.Paragraph, 1, ""},
		{flowed.Paragraph, 2, "x"},
		{flowed.Fixed, 0, "end"},
	}, chunks)
}

func TestDecoder_PendingDepthSurvivesFixedLine(t *testing.T) {
	t.Parallel()

	// a fixed line that finds an empty accumulator passes through without
	// touching the pending depth, which the next flush still reports
	d := flowed.NewDecoder()
	d.DeleteSpace = true
	chunks, err := d.DecodeAll(crlfJoin(
		">  ",
		"fixed",
		"x ",
	))
	require.NoError(t, err)

	assert.Equal(t, []flowed.Chunk{
		{flowed.Fixed, 0, "fixed"},
		{flowed.Paragraph, 1, ""},
		{flowed.Paragraph, 0, "x"},
	}, chunks)
}

func TestDecoder_TrailingCRLF(t *testing.T) {
	t.Parallel()

	// input ending in CRLF has a final empty physical line, which
	// decodes as an empty fixed chunk
	chunks, err := flowed.NewDecoder().DecodeAll([]byte("hello \r\nworld\r\n"))
	require.NoError(t, err)

	assert.Equal(t, []flowed.Chunk{
		{flowed.Paragraph, 0, "hello world"},
		{flowed.Fixed, 0, ""},
	}, chunks)
}

func TestDecoder_StuffingRemoval(t *testing.T) {
	t.Parallel()

	// exactly one stuffing space is removed; extra leading space is
	// content
	chunks, err := flowed.NewDecoder().DecodeAll([]byte(" From the top"))
	require.NoError(t, err)
	assert.Equal(t, []flowed.Chunk{{flowed.Fixed, 0, "From the top"}}, chunks)

	chunks, err = flowed.NewDecoder().DecodeAll([]byte("  extra leading space"))
	require.NoError(t, err)
	assert.Equal(t, []flowed.Chunk{{flowed.Fixed, 0, " extra leading space"}}, chunks)
}

func TestDecoder_Charset(t *testing.T) {
	t.Parallel()

	d := flowed.NewDecoder()
	d.Charset = "ISO-8859-1"
	chunks, err := d.DecodeAll(crlfJoin(
		"> caf\xe9 ",
		"> au lait",
	))
	require.NoError(t, err)

	assert.Equal(t, []flowed.Chunk{
		{flowed.Paragraph, 1, "café au lait"},
	}, chunks)
}

func TestDecoder_StrictCharsetError(t *testing.T) {
	t.Parallel()

	sc := flowed.NewDecoder().Decode([]byte("caf\xe9"))
	assert.False(t, sc.Scan())
	assert.ErrorIs(t, sc.Err(), charset.ErrInvalidBytes)

	_, err := flowed.NewDecoder().DecodeAll([]byte("caf\xe9"))
	assert.ErrorIs(t, err, charset.ErrInvalidBytes)
}

func TestDecoder_LenientCharset(t *testing.T) {
	t.Parallel()

	d := flowed.NewDecoder()
	d.Policy = charset.Replace
	chunks, err := d.DecodeAll([]byte("caf\xe9"))
	require.NoError(t, err)

	assert.Equal(t, []flowed.Chunk{{flowed.Fixed, 0, "caf�"}}, chunks)
}

func TestChunkScanner_SinglePass(t *testing.T) {
	t.Parallel()

	sc := flowed.NewDecoder().Decode([]byte("one\r\ntwo"))
	var got []string
	for sc.Scan() {
		got = append(got, sc.Chunk().Text)
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, []string{"one", "two"}, got)

	// exhausted scanners stay exhausted
	assert.False(t, sc.Scan())
}
