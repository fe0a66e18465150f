package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cats",
		Short: "Manage categories",
	}
	cmd.AddCommand(
		newCatsLsCmd(app),
		newCatsAddCmd(app),
		newCatsRenameCmd(app),
		newCatsRmCmd(app),
	)
	return cmd
}

func newCatsLsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List categories with completion progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := app.Store.Categories()
			if len(cats) == 0 {
				fmt.Println(mutedStyle.Render("no categories yet — try: cart cats add Produce"))
				return nil
			}
			nameWidth := 0
			for _, c := range cats {
				if len(c.Name) > nameWidth {
					nameWidth = len(c.Name)
				}
			}
			lines := make([]string, 0, len(cats)+1)
			lines = append(lines, titleStyle.Render("Categories"))
			for _, c := range cats {
				done, total := c.Counts()
				lines = append(lines, fmt.Sprintf("%s  %-*s  %s",
					accentStyle.Render(fmt.Sprintf("%3d", c.ID)),
					nameWidth, c.Name,
					progressBar(done, total, 20),
				))
			}
			fmt.Println(panel(lines))
			return nil
		},
	}
}

func newCatsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a category (name can be multiple words)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Store.AddCategory(strings.Join(args, " "))
			if err != nil {
				return app.reject(err)
			}
			ok(fmt.Sprintf("added category %d: %s", c.ID, c.Name))
			return nil
		},
	}
}

func newCatsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name...>",
		Short: "Rename a category",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("rename", args[0])
			if err != nil {
				return app.reject(err)
			}
			if err := app.Store.RenameCategory(id, strings.Join(args[1:], " ")); err != nil {
				return app.reject(err)
			}
			ok("renamed")
			return nil
		},
	}
}

func newCatsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a category and all of its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("rm", args[0])
			if err != nil {
				return app.reject(err)
			}
			if err := app.Store.DeleteCategory(id); err != nil {
				hint("Hint: run `cart cats ls` to see valid ids")
				return app.reject(err)
			}
			ok("removed")
			return nil
		},
	}
}
