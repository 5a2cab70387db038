package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/treeoracle"
	"github.com/aretw0/treeoracle/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of treeoracle",
		// Skip config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			if banner, _ := cmd.Flags().GetBool("banner"); banner {
				tui.PrintBanner(cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "treeoracle version %s\n", strings.TrimSpace(treeoracle.Version))
		},
	}
	cmd.Flags().Bool("banner", false, "Print the banner")
	return cmd
}
