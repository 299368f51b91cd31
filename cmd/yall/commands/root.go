package commands

import (
	"github.com/spf13/cobra"

	"github.com/11bDev/yall-sub001/internal/app"
)

var (
	home       string
	passphrase string
	relayList  []string
	appCtx     *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:           "yall",
		Short:         "Cross-post to nostr and Mastodon from one place",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.FromEnv()
			if home != "" {
				cfg.Home = home
			}
			if passphrase != "" {
				cfg.Passphrase = passphrase
			}
			if len(relayList) > 0 {
				cfg.DefaultRelays = relayList
			}
			w, err := app.NewWire(cfg)
			if err != nil {
				return err
			}
			appCtx = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.yall)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting stored credentials")
	root.PersistentFlags().StringSliceVar(&relayList, "relay", nil, "default nostr relay URLs")

	root.AddCommand(initCmd(), keygenCmd(), accountCmd(), relayCmd(), postCmd(), uploadCmd())
	return root.Execute()
}
