package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zostay/go-flowed/charset"
)

var (
	log = logrus.New()

	verbose     bool
	charsetName string
	lenient     bool
)

var rootCmd = &cobra.Command{
	Use:   "flowed",
	Short: "Convert between format=flowed and plain text",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.WarnLevel)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "log conversion details to stderr")
	pf.StringVar(&charsetName, "charset", "utf-8", "character set of the input and output")
	pf.BoolVar(&lenient, "lenient", false, "substitute replacement characters instead of failing on bad bytes")
}

func Execute() error {
	return rootCmd.Execute()
}

// policy maps the --lenient flag onto the charset error policy.
func policy() charset.Policy {
	if lenient {
		return charset.Replace
	}
	return charset.Strict
}

// readInput reads the file named by the first argument, or stdin when no
// argument is given.
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return io.ReadAll(f)
}
