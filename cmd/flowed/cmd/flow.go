package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-flowed"
)

var (
	flowWidth      int
	flowExtraSpace bool
	flowQuoteChars string
)

var flowCmd = &cobra.Command{
	Use:   "flow [file]",
	Short: "Convert plain text to format=flowed",
	Long: `Convert plain text to format=flowed bytes on stdout.

Paragraphs are detected from blank lines and changes in quoting; the
detection is best effort and intended for reasonably clean text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: RunFlow,
}

func init() {
	flowCmd.Flags().IntVarP(&flowWidth, "width", "w", flowed.DefaultWidth, "target line width for flowed paragraphs")
	flowCmd.Flags().BoolVar(&flowExtraSpace, "extra-space", false, "add DelSp flow spaces so breaks need not fall on whitespace")
	flowCmd.Flags().StringVar(&flowQuoteChars, "quote-chars", flowed.DefaultQuoteChars, "characters recognized as quote markers")

	rootCmd.AddCommand(flowCmd)
}

func RunFlow(cmd *cobra.Command, args []string) error {
	in, err := readInput(args)
	if err != nil {
		return err
	}

	e := flowed.NewEncoder()
	e.Charset = charsetName
	e.Policy = policy()
	e.Width = flowWidth
	e.ExtraSpace = flowExtraSpace

	out, err := flowed.ToFlowed(string(in), flowQuoteChars, e)
	if err != nil {
		return err
	}
	log.WithFields(map[string]interface{}{
		"in":  len(in),
		"out": len(out),
	}).Debug("encoded plain text as flowed")

	_, err = os.Stdout.Write(out)
	return err
}
