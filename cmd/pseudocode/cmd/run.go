package cmd

import (
	"fmt"
	"os"

	"github.com/aclevel/pseudocode/internal/interp"
	"github.com/spf13/cobra"
)

var (
	runStrict  bool
	runConfig  string
	runDumpAST bool
	runTrace   bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a pseudocode program",
	Long: `Execute an A-level pseudocode program read from a file or stdin.

Examples:
  # Run a program file
  pseudocode run program.txt

  # Run with lax-mode variable auto-declaration disabled
  pseudocode run --strict program.txt

  # Run with an AST dump (for debugging)
  pseudocode run --dump-ast program.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runStrict, "strict", false, "require DECLARE before use instead of auto-declaring on assignment")
	runCmd.Flags().StringVar(&runConfig, "config", "", "YAML config file (strict, tabWidth, maxRecursionDepth)")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "dump the parsed program structure before executing")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "trace each executed statement to stderr")
}

func runProgram(_ *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(runConfig)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", runConfig, err)
	}

	opts := interp.Options{
		Strict:   runStrict || cfg.Strict,
		TabWidth: cfg.TabWidth,
		MaxDepth: cfg.MaxRecursionDepth,
	}
	if runTrace {
		opts.Trace = os.Stderr
	}

	if runDumpAST {
		prog, err := interp.ParseSource(source)
		if err != nil {
			fmt.Fprintln(os.Stderr, interp.FormatError(source, err, true))
			return fmt.Errorf("parsing failed")
		}
		fmt.Fprintf(os.Stderr, "program: %d top-level statement(s)\n", len(prog.Statements))
	}

	result := interp.Run(source, os.Stdin, os.Stdout, opts)
	if !result.OK() {
		fmt.Fprintln(os.Stderr, interp.FormatError(source, result.Err, true))
		return fmt.Errorf("%s failed", result.Phase)
	}
	return nil
}

func readSource(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := readAllStdin()
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
