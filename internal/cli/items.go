package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cart/internal/model"
)

func newLsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [category-id]",
		Short: "List items, all categories or one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				id, err := parseID("ls", args[0])
				if err != nil {
					return app.reject(err)
				}
				c, found := app.Store.Category(id)
				if !found {
					hint("Hint: run `cart cats ls` to see valid ids")
					return app.reject(fmt.Errorf("category not found"))
				}
				printCategory(c)
				return nil
			}
			cats := app.Store.Categories()
			if len(cats) == 0 {
				fmt.Println(mutedStyle.Render("no categories yet — try: cart cats add Produce"))
				return nil
			}
			for _, c := range cats {
				printCategory(c)
			}
			return nil
		},
	}
}

func printCategory(c model.Category) {
	done, total := c.Counts()
	header := fmt.Sprintf("%s %s  %s %d  %s %d",
		titleStyle.Render(c.Name),
		mutedStyle.Render(fmt.Sprintf("(id %d)", c.ID)),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), total-done,
	)
	lines := []string{header}
	if total == 0 {
		lines = append(lines, mutedStyle.Render("(empty)"))
	}
	for _, it := range c.Items {
		lines = append(lines, fmt.Sprintf("%s %s",
			mutedStyle.Render(fmt.Sprintf("%d", it.ID)),
			renderItem(it.Name, it.Quantity, it.Completed),
		))
	}
	fmt.Println(panel(lines))
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <category-id> <name> <quantity...>",
		Short: "Add an item to a category",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("add", args[0])
			if err != nil {
				return app.reject(err)
			}
			it, err := app.Store.AddItem(id, args[1], strings.Join(args[2:], " "))
			if err != nil {
				return app.reject(err)
			}
			ok(fmt.Sprintf("added item %d: %s — %s", it.ID, it.Name, it.Quantity))
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var name, quantity string
	cmd := &cobra.Command{
		Use:   "edit <category-id> <item-id>",
		Short: "Edit an item's name and/or quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catID, err := parseID("edit", args[0])
			if err != nil {
				return app.reject(err)
			}
			itemID, err := parseID("edit", args[1])
			if err != nil {
				return app.reject(err)
			}
			c, found := app.Store.Category(catID)
			if !found {
				return app.reject(fmt.Errorf("category not found"))
			}
			// Flags not given keep the current value.
			cur := itemIn(c, itemID)
			if cur == nil {
				return app.reject(fmt.Errorf("item not found"))
			}
			newName, newQuantity := cur.Name, cur.Quantity
			if cmd.Flags().Changed("name") {
				newName = name
			}
			if cmd.Flags().Changed("quantity") {
				newQuantity = quantity
			}
			if err := app.Store.EditItem(catID, itemID, newName, newQuantity); err != nil {
				return app.reject(err)
			}
			ok("updated")
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "new item name")
	cmd.Flags().StringVarP(&quantity, "quantity", "q", "", "new quantity text")
	return cmd
}

func itemIn(c model.Category, itemID int64) *model.Item {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <category-id> <item-id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catID, err := parseID("rm", args[0])
			if err != nil {
				return app.reject(err)
			}
			itemID, err := parseID("rm", args[1])
			if err != nil {
				return app.reject(err)
			}
			if err := app.Store.DeleteItem(catID, itemID); err != nil {
				hint("Hint: run `cart ls` to see valid ids")
				return app.reject(err)
			}
			ok("removed")
			return nil
		},
	}
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <category-id> <item-id>",
		Short: "Toggle an item's completed state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catID, err := parseID("toggle", args[0])
			if err != nil {
				return app.reject(err)
			}
			itemID, err := parseID("toggle", args[1])
			if err != nil {
				return app.reject(err)
			}
			completed, err := app.Store.ToggleItem(catID, itemID)
			if err != nil {
				hint("Hint: run `cart ls` to see valid ids")
				return app.reject(err)
			}
			if completed {
				ok("done")
			} else {
				ok("back to pending")
			}
			return nil
		},
	}
}
