package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lfspkg/binutils/msf"
	"github.com/spf13/cobra"
)

var packCmd = &cobra.Command{
	Use:   "pack <output-msf-file> <input-dir>",
	Short: "Pack a directory of files into a fresh MSF archive",
	Long: `Pack every entry of input-dir that is not a directory into a new
MSF archive, in lexical filename order, one stream per file.`,
	Args: cobra.ExactArgs(2),
	RunE: runPack,
}

func runPack(cmd *cobra.Command, args []string) error {
	outPath := args[0]
	inDir := args[1]

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	payloads := make([][]byte, len(names))
	for i, name := range names {
		data, err := os.ReadFile(filepath.Join(inDir, name))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		payloads[i] = data
	}

	if err := msf.Write(outPath, payloads); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	fmt.Fprintf(output, "packed %d streams into %s\n", len(payloads), outPath)
	return nil
}
