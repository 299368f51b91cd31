package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// init: create the config directory and seed the encrypted store so a
// wrong passphrase fails loudly on the next run instead of silently
// creating a second store.
func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config directory and credential store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if err := appCtx.Store.Set("initialized", "1"); err != nil {
				return err
			}
			fmt.Println("Credential store ready. Add accounts with: yall account add")
			return nil
		},
	}
}
