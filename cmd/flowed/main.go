package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-flowed/cmd/flowed/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
