package main

import (
	"github.com/spf13/cobra"
)

func renderCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "render FILE...",
		Short: "Print the tag tree of each file",
		Long: `Normalize each file by extension, build its tree and print it.

Examples:
  tagtree render notes.md
  tagtree render page.html report.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				tree, err := g.loadTree(path)
				if err != nil {
					return err
				}
				if err := tree.Render(cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
