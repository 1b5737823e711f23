package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/nt/internal/exporter"
	"github.com/nikbrunner/nt/internal/importer"
	"github.com/nikbrunner/nt/internal/tree"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import a nested HTML outline after the existing root items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer file.Close()

			items, err := importer.ParseHTMLOutline(file, a.cfg.Icon)
			if err != nil {
				return fmt.Errorf("parse HTML: %w", err)
			}

			engine, closeFn, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := engine.Import(cmd.Context(), items)
			if err != nil {
				return err
			}
			fprintf(cmd, "Imported %d item(s)\n", n)
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export the tree as a nested HTML outline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var outputPath string
			if len(args) == 1 {
				outputPath = args[0]
			} else {
				p, err := exporter.DefaultExportPath()
				if err != nil {
					return fmt.Errorf("default export path: %w", err)
				}
				outputPath = p
			}

			engine, closeFn, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			forest, err := engine.Tree(cmd.Context())
			if err != nil {
				return err
			}

			html := exporter.ExportHTML(forest)
			if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
				return fmt.Errorf("write file: %w", err)
			}

			fprintf(cmd, "Exported %d item(s) to %s\n", len(tree.Flatten(forest)), outputPath)
			return nil
		},
	}
}
