package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/stellarlinkco/llm-arena/internal/config"
	"github.com/stellarlinkco/llm-arena/internal/eval"
	"github.com/stellarlinkco/llm-arena/internal/llm"
	mathtask "github.com/stellarlinkco/llm-arena/internal/task/math"
	"github.com/stellarlinkco/llm-arena/internal/task/tictactoe"
)

type cliState struct {
	configPath string
	cfg        *config.Config
}

var (
	osExit                 = os.Exit
	stderrWriter io.Writer = os.Stderr
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errBatchesFailed) {
			osExit(1)
			return
		}
		fmt.Fprintln(stderrWriter, err)
		osExit(1)
	}
}

func newRootCmd() *cobra.Command {
	st := &cliState{configPath: config.DefaultPath}

	root := &cobra.Command{
		Use:           "arena",
		Short:         "Run LLM evaluations and aggregate the scores",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&st.configPath, "config", st.configPath, "path to config file")

	root.AddCommand(newListCmd(st))
	root.AddCommand(newRunCmd(st))
	root.AddCommand(newDebugCmd(st))
	return root
}

func loadConfig(st *cliState) error {
	if st == nil {
		return errors.New("arena: nil state")
	}
	cfg, err := config.Load(st.configPath)
	if err != nil {
		return err
	}
	st.cfg = cfg
	return nil
}

// buildRegistry registers every eval. The client may be nil for commands
// that only read definitions (list); run and debug pass a configured one.
func buildRegistry(client llm.Completer) (*eval.Registry, error) {
	r := eval.NewRegistry()
	if err := mathtask.Register(r, client); err != nil {
		return nil, err
	}
	if err := tictactoe.Register(r, client); err != nil {
		return nil, err
	}
	return r, nil
}
