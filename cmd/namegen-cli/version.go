package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/integrail/namegen-client/internal/build"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version of namegen",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "namegen version %s\n", build.Version)
			return nil
		},
	}
}
