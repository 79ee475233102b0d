package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tandemgo/tws/archive"
	"github.com/tandemgo/tws/format"
)

var compressionByName = map[string]format.CompressionType{
	"none": format.CompressionNone,
	"zstd": format.CompressionZstd,
	"s2":   format.CompressionS2,
	"lz4":  format.CompressionLZ4,
}

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Bundle converted documents into one archive, or extract them.",
	}
	cmd.AddCommand(newArchiveBundleCmd())
	cmd.AddCommand(newArchiveExtractCmd())
	return cmd
}

func newArchiveBundleCmd() *cobra.Command {
	var outputPath string
	var compressionName string

	cmd := &cobra.Command{
		Use:   "bundle <file.json>...",
		Short: "Bundle one or more documents into a single archive file.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compression, ok := compressionByName[compressionName]
			if !ok {
				return fmt.Errorf("unknown compression %q", compressionName)
			}

			a := archive.New(compression)
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				if err := a.Add(filepath.Base(path), data); err != nil {
					return fmt.Errorf("adding %s: %w", path, err)
				}
			}

			out, err := a.Write()
			if err != nil {
				return fmt.Errorf("writing archive: %w", err)
			}

			return writeBinary(outputPath, out)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to write the archive (default: stdout)")
	cmd.Flags().StringVarP(&compressionName, "compression", "c", "zstd", "Compression algorithm: none, zstd, s2, lz4")
	return cmd
}

func newArchiveExtractCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "extract <archive>",
		Short: "Extract every entry from an archive into a directory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			a, err := archive.Read(data)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", outputDir, err)
			}

			for _, name := range a.Names() {
				content, err := a.Get(name)
				if err != nil {
					return fmt.Errorf("extracting %s: %w", name, err)
				}
				dest := filepath.Join(outputDir, filepath.Base(name))
				if err := os.WriteFile(dest, content, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", dest, err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory to extract entries into")
	return cmd
}
