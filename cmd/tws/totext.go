package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tandemgo/tws/container"
	"github.com/tandemgo/tws/diag"
	"github.com/tandemgo/tws/document"
)

func newToTextCmd() *cobra.Command {
	var outputPath string
	var strict bool

	cmd := &cobra.Command{
		Use:   "totext <solution.tws>",
		Short: "Convert a binary .tws solution file to a textual document.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			var opts []container.ReadOption
			if strict {
				opts = append(opts, container.WithStrictMode())
			}

			collector := diag.NewCollector()
			c, err := container.Read(data, collector, opts...)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}
			for _, e := range collector.Entries() {
				fmt.Fprintln(os.Stderr, e)
			}

			doc, err := document.FromContainer(c)
			if err != nil {
				return fmt.Errorf("converting %s: %w", args[0], err)
			}

			out, err := doc.Bytes()
			if err != nil {
				return fmt.Errorf("rendering document: %w", err)
			}

			return writeText(outputPath, out)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to write the document (default: stdout)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Abort on the first malformed level record instead of skipping it")
	return cmd
}

// writeText writes JSON output, appending a trailing newline when writing
// to stdout so prompts don't run onto the same line.
func writeText(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// writeBinary writes raw bytes verbatim; a trailing newline would corrupt
// binary container or archive data.
func writeBinary(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
