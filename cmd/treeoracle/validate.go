package main

import (
	"fmt"

	"github.com/aretw0/treeoracle/internal/validator"
	"github.com/aretw0/treeoracle/pkg/registry"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [name...]",
		Short: "Check grammars for consistency",
		Long: `Validates each grammar's weights and closure, then reports unreachable or
unproductive symbols and whether generation terminates with a finite mean size.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default(a.cfg.Logical.X, a.cfg.Logical.Y)
			names := args
			if len(names) == 0 {
				names = reg.Names()
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, name := range names {
				entry, err := reg.Get(name)
				if err != nil {
					return err
				}
				rep, err := validator.Analyze(entry.Grammar, entry.Start)
				if err != nil {
					fmt.Fprintf(out, "%s: invalid\n%v\n", name, err)
					failed++
					continue
				}
				fmt.Fprintf(out, "== %s ==\n%s", name, rep)
				if !rep.Finite() {
					fmt.Fprintf(out, "%s: generation may not terminate\n", name)
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d grammar(s) failed validation", failed)
			}
			fmt.Fprintln(out, "All grammars are valid! ✅")
			return nil
		},
	}
}
