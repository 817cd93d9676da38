package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zostay/go-flowed"
)

var (
	unflowWidth int
	unflowQuote string
	noWrapFixed bool
	unflowDelSp bool
)

var unflowCmd = &cobra.Command{
	Use:   "unflow [file]",
	Short: "Render format=flowed text for display",
	Args:  cobra.MaximumNArgs(1),
	RunE:  RunUnflow,
}

func init() {
	unflowCmd.Flags().IntVarP(&unflowWidth, "width", "w", 0, "display width (0 = terminal width, falling back to 78)")
	unflowCmd.Flags().StringVarP(&unflowQuote, "quote", "q", ">", "quote marker string prefixed per quote depth")
	unflowCmd.Flags().BoolVar(&noWrapFixed, "no-wrap-fixed", false, "leave fixed lines unwrapped even past the width")
	unflowCmd.Flags().BoolVar(&unflowDelSp, "delsp", false, "input was encoded with DelSp=yes")

	rootCmd.AddCommand(unflowCmd)
}

func RunUnflow(cmd *cobra.Command, args []string) error {
	in, err := readInput(args)
	if err != nil {
		return err
	}

	d := flowed.NewDecoder()
	d.Charset = charsetName
	d.Policy = policy()
	d.DeleteSpace = unflowDelSp

	w := unflowWidth
	if w <= 0 {
		w = displayWidth()
	}
	log.WithFields(map[string]interface{}{
		"width": w,
		"bytes": len(in),
	}).Debug("rewrapping for display")

	in = bytes.TrimSuffix(in, []byte("\r\n"))
	out, err := flowed.ToWrapped(in, w, unflowQuote, !noWrapFixed, d)
	if err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}

// displayWidth probes the terminal for a width and falls back to the RFC
// 3676 suggested 78 columns when stdout is not a terminal.
func displayWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return flowed.DefaultWidth
}
