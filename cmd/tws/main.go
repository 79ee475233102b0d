// Command tws converts between TWS solution files and the textual document
// form, and bundles converted documents into archives. It contains no codec
// logic of its own, only flag parsing and wiring to the container, document,
// and archive packages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "tws",
		Short: "Convert Tile World solution files to and from textual move notation.",
		Long: `tws reads and writes Tile World's binary .tws solution format and a
human-readable move notation, and bundles converted files into archives.`,
	}

	root.AddCommand(newToTextCmd())
	root.AddCommand(newToBinaryCmd())
	root.AddCommand(newArchiveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
