package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/tagtree/internal/edit"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type editOptions struct {
	script  string
	replace []string
	remove  []string
	add     []string
	bold    []int
	output  string
	jobs    int
}

func editCmd(g *globals) *cobra.Command {
	var opts editOptions

	cmd := &cobra.Command{
		Use:   "edit [flags] FILE...",
		Short: "Apply edits to each file and print or save the result",
		Long: `Build each file's tree, apply edits and print the result.

Script edits run first, followed by flag edits in this order:
--replace, --remove, --add, --bold. Files are processed concurrently;
with --output each result is written to DIR/<name>.tree, otherwise
results are printed in argument order.

Examples:
  tagtree edit --remove ul --bold 2 report.html
  tagtree edit --script edits.yaml -o out/ *.md
  tagtree edit --add urgent=b --replace em=i notes.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edits, err := opts.collect()
			if err != nil {
				return err
			}
			if len(edits) == 0 {
				return errors.New("no edits given")
			}
			return g.runEdits(cmd, args, edits, opts)
		},
	}

	cmd.Flags().StringVar(&opts.script, "script", "", "YAML edit script")
	cmd.Flags().StringArrayVar(&opts.replace, "replace", nil, "Rename tags, as old=new (repeatable)")
	cmd.Flags().StringArrayVar(&opts.remove, "remove", nil, "Remove tags keeping their children (repeatable)")
	cmd.Flags().StringArrayVar(&opts.add, "add", nil, "Wrap a word in a tag, as word=tag (repeatable)")
	cmd.Flags().IntSliceVar(&opts.bold, "bold", nil, "Bold the cells of table row N, 1-indexed (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write results to this directory instead of stdout")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 4, "Files processed concurrently")

	return cmd
}

// collect assembles the edit list from the script and the flags.
func (o editOptions) collect() ([]edit.Edit, error) {
	var edits []edit.Edit
	if o.script != "" {
		script, err := edit.LoadScript(o.script)
		if err != nil {
			return nil, err
		}
		edits = append(edits, script...)
	}

	flagged := []struct {
		op     edit.Op
		values []string
	}{
		{edit.OpReplace, o.replace},
		{edit.OpRemove, o.remove},
		{edit.OpAdd, o.add},
		{edit.OpBold, intStrings(o.bold)},
	}
	for _, f := range flagged {
		for _, v := range f.values {
			e, err := edit.ParseFlag(f.op, v)
			if err != nil {
				return nil, fmt.Errorf("--%s %s: %w", f.op, v, err)
			}
			edits = append(edits, e)
		}
	}
	return edits, nil
}

func intStrings(ns []int) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = strconv.Itoa(n)
	}
	return out
}

func (g *globals) runEdits(cmd *cobra.Command, paths []string, edits []edit.Edit, opts editOptions) error {
	if opts.output != "" {
		seen := make(map[string]string, len(paths))
		for _, p := range paths {
			name := outputName(p)
			if prev, ok := seen[name]; ok {
				return fmt.Errorf("%s and %s would both be written to %s", prev, p, name)
			}
			seen[name] = p
		}
		if err := os.MkdirAll(opts.output, 0o755); err != nil {
			return err
		}
	}

	results := make([]bytes.Buffer, len(paths))
	eg, egCtx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(max(opts.jobs, 1))

	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			return g.editFile(egCtx, path, edits, opts.output, &results[i])
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if opts.output == "" {
		for i := range results {
			if _, err := results[i].WriteTo(cmd.OutOrStdout()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *globals) editFile(ctx context.Context, path string, edits []edit.Edit, outDir string, buf *bytes.Buffer) error {
	tree, err := g.loadTree(path)
	if err != nil {
		return err
	}
	if err := edit.Apply(tree, edits...); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tree.Render(buf); err != nil {
		return err
	}
	g.log.Debug("edits applied", "file", path, "edits", len(edits), "nodes", tree.Len())

	if outDir == "" {
		return nil
	}
	out := filepath.Join(outDir, outputName(path))
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return err
	}
	g.log.Info("wrote tree", "file", path, "output", out)
	return nil
}

// outputName maps an input path to the file name of its edited tree.
func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".tree"
}
