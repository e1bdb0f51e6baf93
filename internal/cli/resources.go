package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"monitor-swiezosci/internal/models"
)

func NewDevicesCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List sensor devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := app.Client.Devices(cmd.Context())
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), devices)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDEVICE\tNAME\tLOCATION\tONLINE")
			for _, d := range devices {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", d.ID, d.DeviceID, d.Name, d.Location, d.Online())
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(newDeviceCreateCommand(app, rootOpts))
	cmd.AddCommand(newDeviceDeleteCommand(app))
	return cmd
}

func newDeviceCreateCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	var deviceID, name, location string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a device (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			created, err := app.Client.CreateDevice(cmd.Context(), models.Device{
				DeviceID: deviceID,
				Name:     name,
				Location: location,
			})
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered device %s (id %d)\n", created.DeviceID, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&deviceID, "device-id", "", "hardware id, e.g. ESP32-001")
	cmd.Flags().StringVar(&name, "name", "", "device name")
	cmd.Flags().StringVar(&location, "location", "", "device location")
	cmd.MarkFlagRequired("device-id")
	return cmd
}

func newDeviceDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a device (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid device id %q", args[0])
			}
			if err := app.Client.DeleteDevice(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted device %d\n", id)
			return nil
		},
	}
}

func NewProductsCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Client.Products(cmd.Context())
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), products)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tBASE PRICE\tSEASON")
			for _, p := range products {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, formatPrice(p.BasePrice), p.CurrentSeason)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(newProductCreateCommand(app, rootOpts))
	cmd.AddCommand(newProductDeleteCommand(app))
	return cmd
}

func newProductCreateCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	var name, category string
	var basePrice float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			created, err := app.Client.CreateProduct(cmd.Context(), models.Product{
				Name:      name,
				Category:  category,
				BasePrice: &basePrice,
			})
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created product %d (%s)\n", created.ID, created.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&category, "category", "", "product category")
	cmd.Flags().Float64Var(&basePrice, "base-price", 0, "base price")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newProductDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			if err := app.Client.DeleteProduct(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted product %d\n", id)
			return nil
		},
	}
}

func NewUsersCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			users, err := app.Client.Users(cmd.Context())
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), users)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLES")
			for _, u := range users {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Roles)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(newUserRoleCommand(app, "promote", "Grant a user the admin role", app.Client.PromoteUser))
	cmd.AddCommand(newUserRoleCommand(app, "demote", "Revoke a user's admin role", app.Client.DemoteUser))
	cmd.AddCommand(newUserDeleteCommand(app))
	return cmd
}

func newUserRoleCommand(app *App, verb, short string, call func(ctx context.Context, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short + " (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			if err := call(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %d %sd\n", id, verb)
			return nil
		},
	}
}

func newUserDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			if err := app.Client.DeleteUser(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %d\n", id)
			return nil
		},
	}
}
