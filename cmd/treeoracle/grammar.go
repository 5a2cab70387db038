package main

import (
	"fmt"

	"github.com/aretw0/treeoracle/internal/presentation/graph"
	"github.com/aretw0/treeoracle/internal/presentation/report"
	"github.com/aretw0/treeoracle/internal/presentation/tui"
	"github.com/aretw0/treeoracle/internal/validator"
	"github.com/aretw0/treeoracle/pkg/grammar"
	"github.com/aretw0/treeoracle/pkg/registry"
	"github.com/spf13/cobra"
)

func newGrammarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect the reference grammars",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered grammars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default(a.cfg.Logical.X, a.cfg.Logical.Y)
			for _, name := range reg.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:       "show <name>",
		Short:     "Show a grammar's rules and analysis",
		Args:      cobra.ExactArgs(1),
		ValidArgs: grammar.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default(a.cfg.Logical.X, a.cfg.Logical.Y)
			entry, err := reg.Get(args[0])
			if err != nil {
				return err
			}

			if mermaid, _ := cmd.Flags().GetBool("mermaid"); mermaid {
				fmt.Fprint(cmd.OutOrStdout(), graph.GrammarMermaid(entry.Grammar))
				return nil
			}

			analysis, err := validator.Analyze(entry.Grammar, entry.Start)
			if err != nil {
				return err
			}
			md := report.Grammar(entry.Grammar, analysis)

			if raw, _ := cmd.Flags().GetBool("raw"); raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}

			render, err := tui.NewRenderer(80)
			if err != nil {
				return err
			}
			out, err := render(md)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	showCmd.Flags().Bool("mermaid", false, "Print a Mermaid flowchart instead of markdown")
	showCmd.Flags().Bool("raw", false, "Print markdown without terminal rendering")

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}
