package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ionspect/ionspect/pkg/inspect"
	"github.com/ionspect/ionspect/pkg/ionbin"
)

var (
	outputPath string
	inputPaths []string
	skipBytes  int
	limitBytes int
)

var rootCmd = &cobra.Command{
	Use:   "ionspect [flags] [file ...]",
	Short: "Display binary Ion alongside its equivalent text Ion",
	Long: `Ionspect displays hex-encoded binary Ion alongside its equivalent text Ion
for human-friendly debugging of malformed or unfamiliar payloads.

Input is read from the given files (--input flags and positional arguments
are equivalent) or from stdin when none are given. System values such as
version markers and symbol tables are summarized as comment rows.`,
	Args: cobra.ArbitraryArgs,
	RunE: runInspect,
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringArrayVarP(&inputPaths, "input", "i", nil, "Input file (repeatable)")
	rootCmd.Flags().IntVarP(&skipBytes, "skip-bytes", "s", 0,
		"Do not display user values in the first n bytes of Ion data")
	rootCmd.Flags().IntVarP(&limitBytes, "limit-bytes", "l", 0,
		"Only display the next n bytes of Ion data (0 = unbounded)")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runInspect(cmd *cobra.Command, args []string) (err error) {
	if skipBytes < 0 {
		return fmt.Errorf("invalid value for --skip-bytes: %d", skipBytes)
	}
	if limitBytes < 0 {
		return fmt.Errorf("invalid value for --limit-bytes: %d", limitBytes)
	}

	out, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); err == nil {
			err = cerr
		}
	}()

	opts := inspect.Options{SkipBytes: skipBytes, LimitBytes: limitBytes}
	inputs := append(inputPaths, args...)

	if len(inputs) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		return inspectOne("stdin", data, out, opts)
	}

	// Inputs are processed sequentially; the first failure halts the batch.
	for _, path := range inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("could not open '%s': %w", path, err)
		}
		if err := inspectOne(path, data, out, opts); err != nil {
			return err
		}
	}
	return nil
}

func inspectOne(name string, data []byte, out io.Writer, opts inspect.Options) error {
	if !ionbin.HasVersionMarker(data) {
		return fmt.Errorf("input '%s' does not appear to be binary Ion", name)
	}
	return inspect.Inspect(data, out, opts)
}

// openOutput resolves the destination sink and disables color when it is
// not a terminal. The returned func flushes and closes the sink; its
// error surfaces write failures that buffering deferred.
func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open '%s': %w", outputPath, err)
		}
		color.NoColor = true
		w := bufio.NewWriter(f)
		return w, func() error {
			if err := w.Flush(); err != nil {
				f.Close()
				return fmt.Errorf("writing '%s': %w", outputPath, err)
			}
			return f.Close()
		}, nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
	out := cmd.OutOrStdout()
	if out != os.Stdout {
		// Tests swap in their own writer; don't buffer it.
		return out, func() error { return nil }, nil
	}
	w := bufio.NewWriter(os.Stdout)
	return w, w.Flush, nil
}
