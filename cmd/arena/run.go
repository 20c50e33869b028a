package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stellarlinkco/llm-arena/internal/llm"
	"github.com/stellarlinkco/llm-arena/internal/runner"
	"github.com/stellarlinkco/llm-arena/internal/store"
)

// errBatchesFailed signals a non-zero exit after the failure banner has
// already been printed.
var errBatchesFailed = errors.New("arena: one or more batches failed")

func newRunCmd(st *cliState) *cobra.Command {
	var (
		runs        int
		maxWorkers  int
		saveResults bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "run <evals> <models>",
		Short: "Run evaluations against models and aggregate the scores",
		Long: `Run every listed evaluation against every listed model. Both
arguments are comma-separated, e.g.:

  arena run math,tictactoe_random openai/gpt-4o,anthropic/claude-3-5-sonnet`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			evalNames := splitList(args[0])
			models := splitList(args[1])
			if len(evalNames) == 0 {
				return errors.New("arena: no evaluations given")
			}
			if len(models) == 0 {
				return errors.New("arena: no models given")
			}

			client, err := llm.NewClientFromConfig(st.cfg)
			if err != nil {
				return err
			}
			registry, err := buildRegistry(client)
			if err != nil {
				return err
			}

			// Validate every eval name before any trial runs.
			for _, name := range evalNames {
				if _, ok := registry.Get(name); !ok {
					return fmt.Errorf("arena: unknown evaluation %q (available: %s)",
						name, strings.Join(registry.Names(), ", "))
				}
			}

			r := &runner.Runner{Progress: cmd.OutOrStdout()}
			if saveResults {
				resultStore, err := store.Open(st.cfg)
				if err != nil {
					return err
				}
				defer resultStore.Close()
				r.Results = resultStore
			}

			workers := maxWorkers
			if workers <= 0 {
				workers = st.cfg.Runner.MaxWorkers
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, name := range evalNames {
				def, _ := registry.Get(name)
				for _, model := range models {
					opts := runner.Options{
						Runs:        runs,
						MaxWorkers:  workers,
						SaveResults: saveResults,
						Verbose:     verbose,
					}
					if opts.Runs <= 0 {
						opts.Runs = def.DefaultRuns
					}

					fmt.Fprintf(out, "== %s / %s (%d runs)\n", name, model, opts.Runs)
					factory, err := registry.Factory(name, model, nil)
					if err != nil {
						return err
					}
					res, err := r.BatchEval(cmd.Context(), factory, opts)
					if err != nil {
						failed++
						fmt.Fprintf(out, "FAILED: %v\n\n", err)
						continue
					}
					printBatchSummary(out, res)
				}
			}

			if failed > 0 {
				fmt.Fprintf(out, "%d batch(es) failed\n", failed)
				return errBatchesFailed
			}
			fmt.Fprintln(out, "all batches completed")
			return nil
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 0, "trials per batch (0 uses each eval's default)")
	cmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "max concurrent trials (0 uses config)")
	cmd.Flags().BoolVar(&saveResults, "save-results", true, "persist aggregate scores to the store")
	cmd.Flags().BoolVar(&verbose, "verbose", true, "print per-trial progress")
	return cmd
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
