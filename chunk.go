package flowed

// Kind classifies a chunk of decoded flowed text.
type Kind int

// Constants for the three kinds of text chunk format=flowed distinguishes.
const (
	// Paragraph is content meant to be re-wrapped by the consumer. The
	// text is stored unwrapped, without embedded line breaks.
	Paragraph Kind = iota

	// Fixed is content whose line break is significant and must be
	// preserved verbatim, such as a blank or indented line.
	Fixed

	// SignatureSeparator is the conventional "-- " line that marks the
	// start of a signature block.
	SignatureSeparator
)

// String returns a name for the kind, for debugging output.
func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Fixed:
		return "fixed"
	case SignatureSeparator:
		return "signature-separator"
	}
	return "unknown"
}

// Chunk is a single run of decoded text. It is the interchange record
// between the Decoder or ParseText on one side and the Encoder or a display
// routine on the other. Chunks are transient: they are produced by one pass
// and meant to be consumed immediately.
type Chunk struct {
	// Kind tags the chunk as a Paragraph, Fixed line, or
	// SignatureSeparator.
	Kind Kind

	// QuoteDepth is the number of nested quote markers stripped from the
	// front of every physical line that contributed to the chunk.
	QuoteDepth int

	// Text is the chunk content with quote markers, stuffing, and line
	// breaks already removed.
	Text string
}
