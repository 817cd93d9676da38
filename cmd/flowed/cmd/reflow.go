package cmd

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-flowed"
)

var (
	reflowWidth      int
	reflowDelSp      bool
	reflowExtraSpace bool
)

var reflowCmd = &cobra.Command{
	Use:   "reflow [file]",
	Short: "Re-encode format=flowed text at a different width",
	Args:  cobra.MaximumNArgs(1),
	RunE:  RunReflow,
}

func init() {
	reflowCmd.Flags().IntVarP(&reflowWidth, "width", "w", flowed.DefaultWidth, "target line width for flowed paragraphs")
	reflowCmd.Flags().BoolVar(&reflowDelSp, "delsp", false, "input was encoded with DelSp=yes")
	reflowCmd.Flags().BoolVar(&reflowExtraSpace, "extra-space", false, "emit DelSp flow spaces in the output")

	rootCmd.AddCommand(reflowCmd)
}

func RunReflow(cmd *cobra.Command, args []string) error {
	in, err := readInput(args)
	if err != nil {
		return err
	}

	d := flowed.NewDecoder()
	d.Charset = charsetName
	d.Policy = policy()
	d.DeleteSpace = reflowDelSp

	// the closing line terminator is not its own empty line
	chunks, err := d.DecodeAll(bytes.TrimSuffix(in, []byte("\r\n")))
	if err != nil {
		return err
	}
	log.WithField("chunks", len(chunks)).Debug("decoded input")

	e := flowed.NewEncoder()
	e.Charset = charsetName
	e.Policy = policy()
	e.Width = reflowWidth
	e.ExtraSpace = reflowExtraSpace

	out, err := e.Encode(chunks)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(out)
	return err
}
