package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tandemgo/tws/container"
	"github.com/tandemgo/tws/diag"
	"github.com/tandemgo/tws/document"
)

func newToBinaryCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "tobinary <document.json>",
		Short: "Convert a textual document back to a binary .tws solution file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			doc, err := document.Parse(data)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			collector := diag.NewCollector()
			c, err := document.ToContainer(doc, collector)
			if err != nil {
				return fmt.Errorf("converting %s: %w", args[0], err)
			}
			for _, e := range collector.Entries() {
				fmt.Fprintln(os.Stderr, e)
			}
			if collector.HasFatal() {
				return fmt.Errorf("%s: one or more solutions failed to convert", args[0])
			}

			out, err := container.Write(c)
			if err != nil {
				return fmt.Errorf("writing container: %w", err)
			}

			return writeBinary(outputPath, out)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to write the .tws file (default: stdout)")
	return cmd
}
