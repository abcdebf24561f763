package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vyrodovalexey/grocerylist/internal/catalog"
	"github.com/vyrodovalexey/grocerylist/internal/categorize"
	"github.com/vyrodovalexey/grocerylist/internal/model"
	"github.com/vyrodovalexey/grocerylist/internal/store"
)

func (a *app) itemsCmd() *cobra.Command {
	var filter string
	var group bool

	cmd := &cobra.Command{
		Use:   "items",
		Short: "Show the items of a list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := model.ParseFilterMode(filter)
			if err != nil {
				return err
			}

			ls, title, err := a.resolveList(cmd.Context(), true)
			if err != nil {
				return err
			}

			items := ls.Load(cmd.Context())
			printItems(cmd.OutOrStdout(), title, items, store.Filter(items, mode), group)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", string(model.FilterAll), "Filter: all, active or completed")
	cmd.Flags().BoolVarP(&group, "group", "g", false, "Group items by category")

	return cmd
}

func (a *app) addCmd() *cobra.Command {
	var quantity, category string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an item; the category is guessed from the name unless given",
		Long: `Add an item. The category is guessed from the name unless --category
is given. Adding to a preset list never seeds it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := categoryOrGuess(category, args[0])
			if err != nil {
				return err
			}

			ls, _, err := a.resolveList(cmd.Context(), false)
			if err != nil {
				return err
			}

			item, err := ls.Add(cmd.Context(), args[0], quantity, cat)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatItem(item))
			return nil
		},
	}

	cmd.Flags().StringVarP(&quantity, "qty", "q", model.DefaultQuantity, "Quantity")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default: guessed from the name)")

	return cmd
}

func (a *app) quickAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick-add NAME",
		Short: "Add one of the staple items",
		Long:  "Add one of the staple items: " + stapleNames() + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			staple, ok := model.FindQuickAddItem(args[0])
			if !ok {
				return fmt.Errorf("%q is not a staple; choose one of %s", args[0], stapleNames())
			}

			ls, _, err := a.resolveList(cmd.Context(), false)
			if err != nil {
				return err
			}

			item, err := ls.Add(cmd.Context(), staple.Name, model.DefaultQuantity, staple.Category)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatItem(item))
			return nil
		},
	}
}

func (a *app) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Check or uncheck an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, _, err := a.resolveList(cmd.Context(), false)
			if err != nil {
				return err
			}

			item, ok := ls.ToggleCompleted(cmd.Context(), args[0])
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "No item with id %s\n", args[0])
				return nil
			}

			state := "Unchecked"
			if item.Completed {
				state = "Checked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, item.Name)
			return nil
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	var name, quantity, category string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an item's name, quantity or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, _, err := a.resolveList(cmd.Context(), false)
			if err != nil {
				return err
			}

			current, ok := findItem(ls.Load(cmd.Context()), args[0])
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "No item with id %s\n", args[0])
				return nil
			}

			flags := cmd.Flags()
			if !flags.Changed("name") {
				name = current.Name
			}
			if !flags.Changed("qty") {
				quantity = current.Quantity
			}
			cat := current.Category
			if flags.Changed("category") {
				if cat, err = model.ParseCategory(category); err != nil {
					return err
				}
			}

			item, _, err := ls.Edit(cmd.Context(), args[0], name, quantity, cat)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatItem(item))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	cmd.Flags().StringVarP(&quantity, "qty", "q", "", "New quantity")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")

	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Remove an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, _, err := a.resolveList(cmd.Context(), false)
			if err != nil {
				return err
			}

			if !ls.Delete(cmd.Context(), args[0]) {
				fmt.Fprintf(cmd.ErrOrStderr(), "No item with id %s\n", args[0])
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed SLUG",
		Short: "Fill a preset's list from the preset if it is empty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			preset, ok := a.presets.Get(slug)
			if !ok {
				return fmt.Errorf("%w: %q", errUnknownList, slug)
			}

			ls := store.NewListStore(catalog.StorageKey(slug), a.blobs, a.logger)
			if !ls.SeedFromPreset(cmd.Context(), preset.Items) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already has items; nothing seeded\n", preset.Name)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s with %d items\n", preset.Name, len(ls.Load(cmd.Context())))
			return nil
		},
	}
}

func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "presets [QUERY]",
		Short:       "List or search the preset lists",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{noStorage: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			entries := a.presets.Search(query)

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No presets match %q\n", query)
				return nil
			}

			for _, g := range catalog.GroupByLabel(entries) {
				fmt.Fprintf(out, "%s\n", g.Label)
				for _, e := range g.Entries {
					fmt.Fprintf(out, "  %-28s %s (%d items)\n", e.Slug, e.Preset.Name, len(e.Preset.Items))
				}
			}
			return nil
		},
	}
}

func (a *app) categorizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "categorize NAME",
		Short:       "Show the category guessed for an item name",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{noStorage: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c := categorize.Categorize(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", c.Emoji(), c)
			return nil
		},
	}
}

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "categories",
		Short:       "List the categories and the keywords that select them",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noStorage: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, c := range model.Categories() {
				keywords := categorize.Keywords(c)
				if len(keywords) == 0 {
					fmt.Fprintf(out, "%s %-10s (fallback)\n", c.Emoji(), c)
					continue
				}
				fmt.Fprintf(out, "%s %-10s %s\n", c.Emoji(), c, strings.Join(keywords, ", "))
			}
			return nil
		},
	}
}

func (a *app) shareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Print the unchecked items as shareable text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ls, title, err := a.resolveList(cmd.Context(), true)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), store.ShareText(title, ls.Load(cmd.Context())))
			return nil
		},
	}
}

// categoryOrGuess parses an explicit category or categorizes name.
func categoryOrGuess(category, name string) (model.Category, error) {
	if category == "" {
		return categorize.Categorize(name), nil
	}
	return model.ParseCategory(category)
}

func findItem(items []model.GroceryItem, id string) (model.GroceryItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return model.GroceryItem{}, false
}

func stapleNames() string {
	staples := model.QuickAddItems()
	names := make([]string, len(staples))
	for i, s := range staples {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

func formatItem(item model.GroceryItem) string {
	return fmt.Sprintf("%s (%s) - %s [%s]", item.Name, item.Quantity, item.Category, item.ID)
}

func printItems(out io.Writer, title string, all, visible []model.GroceryItem, group bool) {
	sum := store.Summarize(all)
	fmt.Fprintf(out, "%s: %d of %d items checked\n", title, sum.Completed, sum.Total)
	if sum.AllCompleted {
		fmt.Fprintln(out, "All done!")
	}

	if len(visible) == 0 {
		fmt.Fprintln(out, "No items.")
		return
	}

	if !group {
		for _, item := range visible {
			printItem(out, item)
		}
		return
	}

	grouped := store.GroupByCategory(visible)
	for _, c := range model.Categories() {
		if len(grouped[c]) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s %s\n", c.Emoji(), c)
		for _, item := range grouped[c] {
			printItem(out, item)
		}
	}
}

func printItem(out io.Writer, item model.GroceryItem) {
	mark := " "
	if item.Completed {
		mark = "x"
	}
	fmt.Fprintf(out, "[%s] %s (%s) - %s  %s\n", mark, item.Name, item.Quantity, item.Category, item.ID)
}
