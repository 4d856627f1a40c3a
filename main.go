package main

import (
	"fmt"
	"io"
	"os"

	"storefront/internal/config"
	"storefront/internal/logging"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli carries what every command needs. Tests fill it in directly.
type cli struct {
	cfg    *config.Config
	logger *zap.Logger
	// fs holds the local state directory.
	fs  afero.Fs
	out io.Writer
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "VogueMen storefront API server and shopper CLI",
		Long: `Run the storefront API or act as a shopper against it.

The cart and wishlist live in the local state directory (STATE_DIR);
account commands talk to the API at API_URL.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	root.SetOut(c.out)

	root.AddCommand(
		newServeCmd(c),
		newCatalogCmd(c),
		newCartCmd(c),
		newWishlistCmd(c),
		newLoginCmd(c),
		newRegisterCmd(c),
		newLogoutCmd(c),
		newProfileCmd(c),
		newAvatarCmd(c),
		newOrdersCmd(c),
		newCheckoutCmd(c),
	)
	return root
}

// setup loads configuration and the logger unless already provided.
func (c *cli) setup() error {
	if c.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		c.cfg = cfg
	}
	if c.logger == nil {
		logger, err := logging.New(c.cfg.LogLevel, c.cfg.LogFormat)
		if err != nil {
			return err
		}
		c.logger = logger
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	return nil
}

func main() {
	c := &cli{out: os.Stdout}
	err := newRootCmd(c).Execute()
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
