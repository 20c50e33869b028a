package main

import (
	"github.com/spf13/cobra"

	"github.com/stellarlinkco/llm-arena/internal/llm"
	"github.com/stellarlinkco/llm-arena/internal/runner"
)

func newDebugCmd(st *cliState) *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "debug <eval> <model>",
		Short: "Run a single trial synchronously and print the transcript",
		Args:  cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := llm.NewClientFromConfig(st.cfg)
			if err != nil {
				return err
			}
			registry, err := buildRegistry(client)
			if err != nil {
				return err
			}
			factory, err := registry.Factory(args[0], args[1], nil)
			if err != nil {
				return err
			}

			r := &runner.Runner{}
			_, err = r.DebugEval(cmd.Context(), factory, seed, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "trial seed")
	return cmd
}
