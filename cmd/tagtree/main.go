package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/tagtree/internal/domtree"
	"github.com/dgallion1/tagtree/internal/parser"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	verbose   bool
	pdftotext bool
	log       *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	rootCmd := &cobra.Command{
		Use:   "tagtree",
		Short: "Build, edit and print document tag trees",
		Long: `tagtree turns documents into a tag tree and edits it.

Supported inputs: line-convention trees (.tree, .lines), HTML, Markdown,
CSV, plain text, DOCX and PDF. Output is always the line convention:
one opening tag, closing tag or text run per line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}
			g.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&g.pdftotext, "pdftotext", true, "Fall back to pdftotext for PDFs the Go reader cannot handle")

	rootCmd.AddCommand(
		renderCmd(g),
		editCmd(g),
		versionCmd(),
	)
	return rootCmd
}

// loadTree normalizes path by extension and builds its tree.
func (g *globals) loadTree(path string) (*domtree.Tree, error) {
	p, err := parser.ForFile(path, parser.Options{PDFFallbackPdftotext: g.pdftotext})
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := p.Parse(f, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	tree, err := domtree.Build(domtree.Lines(lines))
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}
	g.log.Debug("tree built", "file", path, "lines", len(lines), "nodes", tree.Len())
	return tree, nil
}
