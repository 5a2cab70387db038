package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/treeoracle/internal/config"
	"github.com/aretw0/treeoracle/internal/logging"
	"github.com/spf13/cobra"
)

// app carries state shared by every subcommand once the root has loaded configuration.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "treeoracle",
		Short: "treeoracle generates scored synthetic trees",
		Long: `treeoracle samples random trees from probabilistic grammars and scores them
with a fuzzy logical evaluator or a toy RNA free-energy estimator. The resulting
(tree, score) pairs feed learning pipelines that need ground truth.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to a YAML config file (default "+config.DefaultPath+")")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(
		newGenerateCmd(a),
		newGrammarCmd(a),
		newValidateCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// load reads the config file and applies persistent flag overrides.
func (a *app) load(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath
	} else if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		// Only the implicit default may be absent.
		return fmt.Errorf("config file not found: %s", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
	return nil
}
