// Command folioctl is the operator CLI of the folio blog backend: slug and
// excerpt helpers, offline queries over exports, and imports into storage.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "folioctl",
		Short:         "Operate the folio blog backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newSlugCmd(),
		newExcerptCmd(),
		newQueryCmd(),
		newImportCmd(),
	)
	return root
}
