package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhall/swiftdeps"
)

var flagVerbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "swiftdeps",
	Short:         "Index Swift sources and walk type dependency graphs",
	Long:          "Swiftdeps parses Swift files with tree-sitter, indexes type declarations and references in memory, and prints what a type transitively depends on.",
	SilenceErrors: true,
	SilenceUsage:  true,
	// No Run; prints help when invoked bare.
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log per-file progress and failures")

	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(printCmd)
}

// newEngine builds an Engine whose logger stays quiet unless --verbose.
func newEngine() *swiftdeps.Engine {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return swiftdeps.New(swiftdeps.WithLogger(logger))
}

var depsCmd = &cobra.Command{
	Use:   "deps <type_name> [path]",
	Short: "Print everything a type transitively depends on",
	Long:  "Scans the path, builds the in-memory index, then walks the dependency graph from the named type and prints an indented tree.",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runDeps,
}

func runDeps(cmd *cobra.Command, args []string) error {
	typeName := args[0]
	path := "."
	if len(args) > 1 {
		path = args[1]
	}

	engine := newEngine()

	stats, err := engine.Scan(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}
	if stats.Failures > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d file(s) failed to extract\n", stats.Failures)
	}

	cur, err := engine.Walk(typeName)
	if err != nil {
		return err
	}

	renderDeps(os.Stdout, engine.Index(), cur)
	return nil
}

var (
	flagDecl bool
	flagRefs bool
	flagFull bool
)

var printCmd = &cobra.Command{
	Use:   "print [path]",
	Short: "Dump declarations, references or parse trees per file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPrint,
}

func init() {
	printCmd.Flags().BoolVarP(&flagDecl, "decl", "d", false, "print declarations")
	printCmd.Flags().BoolVarP(&flagRefs, "refs", "r", false, "print references")
	printCmd.Flags().BoolVar(&flagFull, "full", false, "print the full parse tree")
}

func runPrint(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	engine := newEngine()
	opts := swiftdeps.PrintOptions{
		Declarations: flagDecl,
		References:   flagRefs,
		Full:         flagFull,
	}
	return engine.Print(cmd.Context(), path, os.Stdout, opts)
}
