package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/pressroom"
	"github.com/eringen/pressroom/content"
)

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Copy Markdown files into the SQLite store",
		Long: `The import command reads every Markdown file under dir and saves it in the
SQLite store at database_path. The import is all or nothing: one invalid
file aborts it and leaves the store untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := content.NewLoader(args[0]).Pages(cmd.Context())
			if err != nil {
				return err
			}
			store, err := pressroom.NewStore(c.cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Import(cmd.Context(), pages); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d pages into %s\n", len(pages), c.cfg.DatabasePath)
			return nil
		},
	}
}
