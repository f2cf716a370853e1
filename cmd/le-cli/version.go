package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.ReleaseVersion=...".
var (
	ReleaseVersion = "dev"
	ReleaseDate    = "unknown"
	ReleaseCommit  = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print version and exit",
		Long:    ``,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "version: %s, released: %s, commit: %s\n",
				ReleaseVersion, ReleaseDate, ReleaseCommit)
		},
	}
}
