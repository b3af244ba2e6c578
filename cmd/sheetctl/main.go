// Command sheetctl drives an in-process Grid from the shell, using cobra
// subcommands (set, get, clear, dump) the way skelly's root command
// dispatches to its own subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/berejant/gridsheet/internal/formula"
	"github.com/berejant/gridsheet/internal/grid"
	"github.com/berejant/gridsheet/internal/wire"
)

func main() {
	sess := newSession()

	rootCmd := &cobra.Command{
		Use:   "sheetctl",
		Short: "Script a grid dependency sheet from the command line",
	}

	setCmd := &cobra.Command{
		Use:   "set <pos> <text>",
		Short: "Set a cell's text, e.g. sheetctl set A1 \"=B1+2\"",
		Args:  cobra.ExactArgs(2),
		RunE:  sess.runSet,
	}
	setCmd.Flags().String("script", "", "path to a script file of \"pos text\" lines to load first")

	getCmd := &cobra.Command{
		Use:   "get <pos>",
		Short: "Print a cell's text and computed value",
		Args:  cobra.ExactArgs(1),
		RunE:  sess.runGet,
	}

	clearCmd := &cobra.Command{
		Use:   "clear <pos>",
		Short: "Revert a cell to Empty",
		Args:  cobra.ExactArgs(1),
		RunE:  sess.runClear,
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the whole sheet",
		RunE:  sess.runDump,
	}
	dumpCmd.Flags().String("format", "values", "one of: values, texts, binary")
	dumpCmd.Flags().String("script", "", "path to a script file of \"pos text\" lines to load first")

	rootCmd.AddCommand(setCmd, getCmd, clearCmd, dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session holds the in-process Grid of one sheetctl invocation. Nothing is
// kept between invocations: set and dump start from the cells their
// --script file loads, and get and clear, which take no --script flag,
// act on an empty Grid.
type session struct {
	grid *grid.Grid
}

func newSession() *session {
	return &session{grid: grid.NewGrid(formula.NewExecutor())}
}

func (s *session) loadScript(path string) error {
	if path == "" {
		return nil
	}
	return loadScriptFile(s.grid, path)
}

func (s *session) runSet(cmd *cobra.Command, args []string) error {
	scriptPath, _ := cmd.Flags().GetString("script")
	if err := s.loadScript(scriptPath); err != nil {
		return err
	}

	pos, err := grid.ParsePosition(args[0])
	if err != nil {
		return err
	}
	if err := s.grid.SetCell(pos, args[1]); err != nil {
		return err
	}

	cell, _ := s.grid.GetCell(pos)
	fmt.Printf("%s = %s\n", pos, cell.GetValue())
	return nil
}

func (s *session) runGet(cmd *cobra.Command, args []string) error {
	pos, err := grid.ParsePosition(args[0])
	if err != nil {
		return err
	}
	cell, err := s.grid.GetCell(pos)
	if err != nil {
		return err
	}
	if cell == nil {
		fmt.Printf("%s is empty\n", pos)
		return nil
	}
	fmt.Printf("%s: text=%q value=%s\n", pos, cell.GetText(), cell.GetValue())
	return nil
}

func (s *session) runClear(cmd *cobra.Command, args []string) error {
	pos, err := grid.ParsePosition(args[0])
	if err != nil {
		return err
	}
	return s.grid.ClearCell(pos)
}

func (s *session) runDump(cmd *cobra.Command, args []string) error {
	scriptPath, _ := cmd.Flags().GetString("script")
	if err := s.loadScript(scriptPath); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "values":
		return s.grid.PrintValues(os.Stdout)
	case "texts":
		return s.grid.PrintTexts(os.Stdout)
	case "binary":
		return wire.EncodeTranscript(os.Stdout, s.grid)
	default:
		return fmt.Errorf("unknown --format %q (want values, texts, or binary)", format)
	}
}
