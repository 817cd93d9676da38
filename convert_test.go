package flowed_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-flowed"
)

func TestToWrapped(t *testing.T) {
	t.Parallel()

	input := crlfJoin(
		">> `Take some more tea,' the March Hare said to Alice, very ",
		">> earnestly.",
		">",
		"> `I've had nothing yet,' Alice replied in an offended ",
		"> tone, `so I can't take more.'",
		"",
		"`You mean you can't take less,' said the Hatter: `it's very ",
		"easy to take more than nothing.'",
		"",
		"-- ",
		"Lewis Caroll",
	)

	out, err := flowed.ToWrapped(input, 60, ">", true, nil)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		">> `Take some more tea,' the March Hare said to Alice, very",
		">> earnestly.",
		"> ",
		"> `I've had nothing yet,' Alice replied in an offended tone,",
		"> `so I can't take more.'",
		"",
		"`You mean you can't take less,' said the Hatter: `it's very",
		"easy to take more than nothing.'",
		"",
		"-- ",
		"Lewis Caroll",
	}, "\n"), out)
}

func TestToWrapped_QuoteEndingInSpace(t *testing.T) {
	t.Parallel()

	out, err := flowed.ToWrapped([]byte("> short"), 40, "| ", true, nil)
	require.NoError(t, err)
	assert.Equal(t, "| short", out)
}

func TestToWrapped_NoWrapFixed(t *testing.T) {
	t.Parallel()

	long := "a fixed line that is well past the width and must stay on one line"
	out, err := flowed.ToWrapped([]byte(long), 20, ">", false, nil)
	require.NoError(t, err)
	assert.Equal(t, long, out)
}

func TestToWrapped_Idempotent(t *testing.T) {
	t.Parallel()

	input := crlfJoin(
		"a paragraph that will be ",
		"rewrapped for display",
	)

	first, err := flowed.ToWrapped(input, 30, ">", true, nil)
	require.NoError(t, err)
	second, err := flowed.ToWrapped(input, 30, ">", true, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestToFlowed(t *testing.T) {
	t.Parallel()

	out, err := flowed.ToFlowed("First paragraph. \nStill first.\n\nSecond.", "", nil)
	require.NoError(t, err)

	assert.Equal(t, []byte("First paragraph. Still first.\r\n\r\nSecond.\r\n"), out)
}

func TestToFlowed_Signature(t *testing.T) {
	t.Parallel()

	out, err := flowed.ToFlowed("Regards,\n--\nme", "", nil)
	require.NoError(t, err)

	assert.Equal(t, []byte("Regards,\r\n-- \r\nme\r\n"), out)
}

func TestToFlowed_Quoted(t *testing.T) {
	t.Parallel()

	e := flowed.NewEncoder()
	e.Width = 40

	out, err := flowed.ToFlowed("> a quoted remark that runs long enough to wrap\nreply text", "", e)
	require.NoError(t, err)

	assert.Equal(t, []byte(
		"> a quoted remark that runs long enough \r\n"+
			"> to wrap\r\n"+
			"reply text\r\n"), out)
}

func TestDecodeEncodeDefaults(t *testing.T) {
	t.Parallel()

	chunks, err := flowed.Decode([]byte("plain fixed line"))
	require.NoError(t, err)
	assert.Equal(t, []flowed.Chunk{{flowed.Fixed, 0, "plain fixed line"}}, chunks)

	out, err := flowed.Encode(chunks)
	require.NoError(t, err)
	assert.Equal(t, []byte("plain fixed line\r\n"), out)
}
