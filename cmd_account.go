package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"storefront/internal/client"
	"storefront/internal/models"
	"storefront/internal/shop"

	"github.com/spf13/cobra"
)

// openSession restores the signed-in session from the state directory.
func (c *cli) openSession() (*client.Session, *shop.Store, error) {
	st, store, err := c.openState()
	if err != nil {
		return nil, nil, err
	}
	session, err := client.NewSession(client.New(c.cfg.APIURL, nil), st, c.logger.Named("session"))
	if err != nil {
		return nil, nil, err
	}
	return session, store, nil
}

func resultErr(res client.Result) error {
	if res.Success {
		return nil
	}
	return errors.New(res.Error)
}

func newLoginCmd(c *cli) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and remember the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := c.openSession()
			if err != nil {
				return err
			}
			if err := resultErr(session.Login(cmd.Context(), args[0], password)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", session.User().Email)
			return err
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(c *cli) *cobra.Command {
	var password, name string
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := c.openSession()
			if err != nil {
				return err
			}
			if err := resultErr(session.Register(cmd.Context(), args[0], password, name)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", session.User().Email)
			return err
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := c.openSession()
			if err != nil {
				return err
			}
			if err := session.Logout(); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return err
		},
	}
}

func newProfileCmd(c *cli) *cobra.Command {
	var name, avatar, phone, address string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the cached profile, or update the fields given as flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := c.openSession()
			if err != nil {
				return err
			}

			var update models.ProfileUpdate
			flags := cmd.Flags()
			if flags.Changed("name") {
				update.Name = &name
			}
			if flags.Changed("avatar") {
				update.Avatar = &avatar
			}
			if flags.Changed("phone") {
				update.Phone = &phone
			}
			if flags.Changed("address") {
				update.Address = &address
			}
			if !update.Empty() {
				if err := resultErr(session.UpdateProfile(cmd.Context(), update)); err != nil {
					return err
				}
			}

			user := session.User()
			if user == nil {
				return client.ErrNotLoggedIn
			}
			return writeFormatted(cmd.OutOrStdout(), "json", user)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar URL")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&address, "address", "", "delivery address")
	return cmd
}

func newAvatarCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <image-file>",
		Short: "Upload an avatar image and set it on the profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := c.openSession()
			if err != nil {
				return err
			}
			f, err := c.fs.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			url, err := session.UploadAvatar(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			if err := resultErr(session.UpdateProfile(cmd.Context(), models.ProfileUpdate{Avatar: &url})); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
			return err
		},
	}
}

func newOrdersCmd(c *cli) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List your orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := c.openSession()
			if err != nil {
				return err
			}
			orders, err := session.Orders(cmd.Context())
			if err != nil {
				return err
			}
			if format != "" {
				return writeFormatted(cmd.OutOrStdout(), format, orders)
			}
			for _, o := range orders {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-10s  %d items  %.2f\n",
					o.CreatedAt.Format(time.DateOnly), o.OrderNo, o.Status, len(o.Items), o.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "json or yaml instead of the summary")
	return cmd
}

func newCheckoutCmd(c *cli) *cobra.Command {
	var clearCart bool
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the current cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, store, err := c.openSession()
			if err != nil {
				return err
			}
			order, err := session.Checkout(cmd.Context(), store.Cart())
			if err != nil {
				return err
			}
			if clearCart {
				if err := store.Clear(); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Order %s placed: %.2f (%s)\n", order.OrderNo, order.Total, order.Status)
			return err
		},
	}
	cmd.Flags().BoolVar(&clearCart, "clear", false, "empty the cart after a successful order")
	return cmd
}
