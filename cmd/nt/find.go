package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/nt/internal/model"
	"github.com/nikbrunner/nt/internal/picker"
	"github.com/nikbrunner/nt/internal/search"
	"github.com/nikbrunner/nt/internal/tree"
)

func newFindCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Fuzzy-search titles and print the chosen item's path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeFn()

			query := strings.Join(args, " ")
			forest, err := engine.Tree(cmd.Context())
			if err != nil {
				return err
			}
			// Search what the tree shows, so dropped orphans stay hidden.
			choices := findChoices(forest, query)

			if len(choices) == 0 {
				fprintf(cmd, "No items found for '%s'\n", query)
				return nil
			}

			if list || len(choices) == 1 {
				for _, c := range choices {
					printChoice(cmd, c.Item, c.Path)
				}
				return nil
			}

			// Multiple results - show picker
			p := picker.New(choices, query)
			finalModel, err := tea.NewProgram(p).Run()
			if err != nil {
				return fmt.Errorf("run picker: %w", err)
			}
			finalPicker := finalModel.(picker.Picker)
			selected := finalPicker.SelectedItem()
			if selected == nil {
				return nil
			}
			for _, c := range choices {
				if c.Item.ID == selected.ID {
					printChoice(cmd, c.Item, c.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "Print all matches instead of opening the picker")
	return cmd
}

// findChoices runs the fuzzy search and attaches each match's parent path.
func findChoices(forest []*tree.Node, query string) []picker.Choice {
	results := search.FuzzySearchItems(tree.Flatten(forest), query)
	choices := make([]picker.Choice, len(results))
	for i, r := range results {
		path := tree.Path(forest, r.Item.ID)
		choices[i] = picker.Choice{
			SearchResult: r,
			Path:         strings.Join(path[:len(path)-1], " / "),
		}
	}
	return choices
}

func printChoice(cmd *cobra.Command, it *model.Item, path string) {
	title := it.Title
	if path != "" {
		title = path + " / " + title
	}
	fprintf(cmd, "%s  %s\n", title, it.ID)
}
