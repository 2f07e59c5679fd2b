package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lfspkg/binutils/msf"
	"github.com/spf13/cobra"
)

var extractDir string

var extractCmd = &cobra.Command{
	Use:   "extract <msf-file> [stream-index]",
	Short: "Extract one or all streams from an MSF archive",
	Long: `Extract a single stream by index, or every stream, from an
MSF archive into a destination directory. Each extracted file is named
after its 4-digit hex stream name.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractDir, "dir", "d", ".", "destination directory")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := msf.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	if len(args) == 2 {
		var index uint32
		if _, err := fmt.Sscanf(args[1], "%d", &index); err != nil {
			return fmt.Errorf("invalid stream index %q: %w", args[1], err)
		}
		s, err := f.StreamAt(index)
		if err != nil {
			return fmt.Errorf("failed to locate stream %d: %w", index, err)
		}
		return extractOne(s)
	}

	numStreams, err := f.NumStreams()
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}
	for i := uint32(0); i < numStreams; i++ {
		s, err := f.StreamAt(i)
		if err != nil {
			return fmt.Errorf("failed to locate stream %d: %w", i, err)
		}
		if err := extractOne(s); err != nil {
			return err
		}
	}
	return nil
}

func extractOne(s *msf.Stream) error {
	data, err := s.Bytes()
	if err != nil {
		return fmt.Errorf("failed to read stream %s: %w", s.Name(), err)
	}

	dest := filepath.Join(extractDir, s.Name())
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	fmt.Fprintf(output, "%s -> %s (%d bytes)\n", s.Name(), dest, s.Size())
	return nil
}
