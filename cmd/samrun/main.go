// Command samrun runs one structural-regex program against a file,
// printing whatever the program's p commands write and rewriting the file
// with the program's edits applied.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/biox/ad/buffer"
	"github.com/biox/ad/edit"
)

var (
	programText string
	dryRun      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samrun FILE",
		Short: "Run a structural-regex edit program against a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSamrun,
	}
	cmd.Flags().StringVarP(&programText, "program", "e", "", "program text (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the result instead of writing the file")
	cmd.MarkFlagRequired("program")
	return cmd
}

func runSamrun(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("samrun: building logger: %w", err)
	}
	defer logger.Sync()

	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		logger.Error("reading input file", zap.String("path", path), zap.Error(err))
		return err
	}

	prog, err := edit.ParseProgram(programText)
	if err != nil {
		logger.Error("parsing program", zap.String("program", programText), zap.Error(err))
		return err
	}

	buf := buffer.NewBuffer(string(src))
	result, err := prog.Execute(buf, path, cmd.OutOrStdout())
	if err != nil {
		logger.Error("executing program", zap.Error(err))
		return err
	}
	buf.SetDot(result)

	logger.Info("program executed",
		zap.String("path", path),
		zap.Int("dot_from", result.From),
		zap.Int("dot_to", result.To),
	)

	if dryRun {
		fmt.Fprint(cmd.OutOrStdout(), buf.String())
		return nil
	}
	return os.WriteFile(path, []byte(buf.String()), 0o644)
}
