package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/nt/internal/model"
	"github.com/nikbrunner/nt/internal/tree"
)

func newTreeCmd(a *app) *cobra.Command {
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the note tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			forest, err := engine.Tree(cmd.Context())
			if err != nil {
				return err
			}
			printForest(cmd, forest, 0, showIDs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showIDs, "ids", true, "Show item ids")
	return cmd
}

func printForest(cmd *cobra.Command, nodes []*tree.Node, depth int, showIDs bool) {
	for _, n := range nodes {
		line := strings.Repeat("  ", depth)
		if n.Icon != "" {
			line += n.Icon + " "
		}
		line += n.Title
		if showIDs {
			line += "  " + n.ID
		}
		fprintf(cmd, "%s\n", line)
		printForest(cmd, n.Children, depth+1, showIDs)
	}
}

func newAddCmd(a *app) *cobra.Command {
	var parentID string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create an item (placeholder title when omitted)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			it, err := engine.Create(cmd.Context(), model.NewItemParams{
				Title:    strings.Join(args, " "),
				Icon:     a.cfg.Icon,
				ParentID: parentID,
			})
			if err != nil {
				return err
			}
			fprintf(cmd, "%s\n", it.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&parentID, "parent", "", "Parent item id (default root)")
	return cmd
}

func newMoveCmd(a *app) *cobra.Command {
	var (
		to    string
		index int
	)

	cmd := &cobra.Command{
		Use:   "mv <id>...",
		Short: "Move items under a parent at a sibling index",
		Long: strings.TrimSpace(`
Move one or more items, in their current order, under --to (root when empty)
starting at sibling position --index. Positions count the parent's children
before the move; the index is clamped to the valid range.`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			changed, err := engine.Move(cmd.Context(), tree.MoveRequest{
				DraggedIDs:  args,
				NewParentID: to,
				TargetIndex: index,
			})
			if err != nil {
				return err
			}
			fprintf(cmd, "Moved %d item(s), %d updated\n", len(args), len(changed))
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "New parent id (default root)")
	cmd.Flags().IntVar(&index, "index", 0, "Target position among the parent's children")
	return cmd
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Change an item's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			it, err := engine.Rename(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return fmt.Errorf("rename %s: %w", args[0], err)
			}
			fprintf(cmd, "Renamed %s to %q\n", it.ID, it.Title)
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete items (siblings are not renumbered)",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			removed, err := engine.Delete(cmd.Context(), args)
			for _, id := range removed {
				fprintf(cmd, "Deleted %s\n", id)
			}
			return err
		},
	}
}

func newNormalizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Renumber every sibling group to 1..n",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := engine.Normalize(cmd.Context())
			if err != nil {
				return err
			}
			fprintf(cmd, "Renumbered %d item(s)\n", n)
			return nil
		},
	}
}
