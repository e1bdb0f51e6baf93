package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"monitor-swiezosci/internal/models"
)

func NewUnitsCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "List monitored units",
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := app.Client.Units(cmd.Context())
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), units)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPRODUCT\tINVENTORY\tPRICE\tLOCATION")
			for _, unit := range units {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					unit.ID, unit.Name, productName(unit.Product),
					formatCount(unit.InventoryCount), formatPrice(unit.CurrentPrice), unit.Location)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(newUnitCreateCommand(app, rootOpts))
	cmd.AddCommand(newUnitDeleteCommand(app))
	cmd.AddCommand(newUnitInventoryCommand(app, rootOpts))
	return cmd
}

func newUnitCreateCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	var name, location string
	var productID int64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a unit (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			unit := models.Unit{Name: name, Location: location}
			if productID != 0 {
				unit.Product = &models.Product{ID: productID}
			}
			created, err := app.Client.CreateUnit(cmd.Context(), unit)
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created unit %d (%s)\n", created.ID, created.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "unit name")
	cmd.Flags().StringVar(&location, "location", "", "unit location")
	cmd.Flags().Int64Var(&productID, "product", 0, "product id")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newUnitDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <unitId>",
		Short: "Delete a unit (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid unit id %q", args[0])
			}
			if err := app.Client.DeleteUnit(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted unit %d\n", id)
			return nil
		},
	}
}

func newUnitInventoryCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "inventory <unitId>",
		Short: "Update a unit's inventory count (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid unit id %q", args[0])
			}
			updated, err := app.Client.UpdateInventory(cmd.Context(), id, count)
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), updated)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inventory for unit %d set to %d\n", id, count)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "new inventory count")
	cmd.MarkFlagRequired("count")
	return cmd
}

func productName(p *models.Product) string {
	if p == nil {
		return "-"
	}
	return p.Name
}

func formatCount(count *int) string {
	if count == nil {
		return "-"
	}
	return strconv.Itoa(*count)
}

func formatPrice(price *float64) string {
	if price == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", *price)
}
