package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lfspkg/binutils/msf"
	"github.com/spf13/cobra"
)

var listVerbose bool

var listCmd = &cobra.Command{
	Use:   "list <msf-file>",
	Short: "List streams in an MSF archive",
	Long:  `List every stream in an MSF archive, by index and name.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listVerbose, "verbose", "v", false, "show stream sizes")
}

func runList(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := msf.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	if listVerbose {
		fmt.Fprintf(output, "%-5s %-10s %s\n", "INDEX", "SIZE", "NAME")
		fmt.Fprintf(output, "%s\n", strings.Repeat("-", 40))
	} else {
		fmt.Fprintf(output, "%-5s %s\n", "INDEX", "NAME")
		fmt.Fprintf(output, "%s\n", strings.Repeat("-", 20))
	}

	var count int
	var prev *msf.Stream
	for {
		s, err := f.Next(prev)
		if errors.Is(err, msf.ErrNoMoreFiles) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to enumerate streams: %w", err)
		}
		if listVerbose {
			fmt.Fprintf(output, "%-5d %-10d %s\n", s.Index(), s.Size(), s.Name())
		} else {
			fmt.Fprintf(output, "%-5d %s\n", s.Index(), s.Name())
		}
		count++
		prev = s
	}

	fmt.Fprintf(output, "\nTotal: %d streams\n", count)
	return nil
}
