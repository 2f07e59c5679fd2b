package main

import (
	"fmt"

	"github.com/lfspkg/binutils/msf"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <msf-file>",
	Short: "Display MSF archive header information",
	Long:  `Display the superblock fields and stream count of an MSF archive.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := msf.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	sb, err := f.SuperBlock()
	if err != nil {
		return fmt.Errorf("failed to read superblock: %w", err)
	}

	numStreams, err := f.NumStreams()
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	fmt.Fprintf(output, "Archive: %s\n", path)
	fmt.Fprintf(output, "Block Size: %d\n", sb.BlockSize)
	fmt.Fprintf(output, "Free Block Map Block: %d\n", sb.FreeBlockMapBlock)
	fmt.Fprintf(output, "Num Blocks: %d\n", sb.NumBlocks)
	fmt.Fprintf(output, "Directory Bytes: %d\n", sb.NumDirectoryBytes)
	fmt.Fprintf(output, "Block Map Addr: %d\n", sb.BlockMapAddr)
	fmt.Fprintf(output, "File Size: %d\n", sb.FileSize())
	fmt.Fprintf(output, "Number of Streams: %d\n", numStreams)

	return nil
}
