package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"devjournal/storage"
)

// newCatalogCommand builds the "project" and "tag" command trees.
func newCatalogCommand(kind storage.Kind, plural string) *cobra.Command {
	root := &cobra.Command{
		Use:   string(kind),
		Short: fmt.Sprintf("Manage the %s catalog.", plural),
		Long: fmt.Sprintf(`List, add, update, toggle and remove %s in the local catalog.

Catalog colors are used in reports. Inactive %s stay known for colors
but are hidden from "list" unless --all is set.`, plural, plural),
		Example: fmt.Sprintf(`
  devjournal %[1]s list
  devjournal %[1]s add Research --description "Spikes and prototypes" --color "#17a2b8"
  devjournal %[1]s update Research --color "#20c997"
  devjournal %[1]s toggle Research
  devjournal %[1]s remove Research
`, kind),
	}

	var listAll bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", plural),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(func(catalog *storage.Catalog) error {
				items, err := catalog.List(kind, listAll)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tCOLOR\tACTIVE\tDESCRIPTION")
				for _, item := range items {
					fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", item.Name, item.Color, item.Active, item.Description)
				}
				return w.Flush()
			})
		},
	}
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include inactive items")

	var addDescription, addColor string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: fmt.Sprintf("Add to the %s catalog", plural),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(func(catalog *storage.Catalog) error {
				item, err := catalog.Create(storage.CatalogItem{
					Kind:        kind,
					Name:        args[0],
					Description: addDescription,
					Color:       addColor,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q (%s)\n", kind, item.Name, item.Color)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&addDescription, "description", "", "Description")
	addCmd.Flags().StringVar(&addColor, "color", "", "Color as #rrggbb (default per kind)")

	var updateDescription, updateColor string
	updateCmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Change description or color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(func(catalog *storage.Catalog) error {
				item, found, err := catalog.Get(kind, args[0])
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("%w: %s %q", storage.ErrCatalogItemNotFound, kind, args[0])
				}
				if cmd.Flags().Changed("description") {
					item.Description = updateDescription
				}
				if cmd.Flags().Changed("color") {
					item.Color = updateColor
				}
				if err := catalog.Update(kind, item.Name, item.Description, item.Color); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %q\n", kind, item.Name)
				return nil
			})
		},
	}
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")
	updateCmd.Flags().StringVar(&updateColor, "color", "", "New color as #rrggbb")

	toggleCmd := &cobra.Command{
		Use:   "toggle <name>",
		Short: "Activate or deactivate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(func(catalog *storage.Catalog) error {
				active, err := catalog.Toggle(kind, args[0])
				if err != nil {
					return err
				}
				state := "inactive"
				if active {
					state = "active"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %q is now %s\n", kind, args[0], state)
				return nil
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Remove from the %s catalog", plural),
		Long:    "Remove a catalog item. Journal entries that use the name are not changed.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(func(catalog *storage.Catalog) error {
				deleted, err := catalog.Delete(kind, args[0])
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("%w: %s %q", storage.ErrCatalogItemNotFound, kind, args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %q\n", kind, args[0])
				return nil
			})
		},
	}

	root.AddCommand(listCmd, addCmd, updateCmd, toggleCmd, removeCmd)
	return root
}

func withCatalog(fn func(catalog *storage.Catalog) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()
	return fn(catalog)
}

func init() {
	rootCmd.AddCommand(newCatalogCommand(storage.KindProject, "projects"))
	rootCmd.AddCommand(newCatalogCommand(storage.KindTag, "tags"))
}
