package commands

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/11bDev/yall-sub001/internal/crypto"
	nostrsvc "github.com/11bDev/yall-sub001/internal/services/nostr"
)

// upload <file>: push a media file to the Blossom server, signing the
// authorization with the named nostr account's key.
func uploadCmd() *cobra.Command {
	var accountID string
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Push a media file to the Blossom server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if appCtx.Media == nil {
				return fmt.Errorf("no media server configured (set YALL_BLOSSOM_SERVER)")
			}

			acct, err := appCtx.Accounts.Get(accountID)
			if err != nil {
				return err
			}
			priv, ok := acct.Credential(nostrsvc.CredPrivateKey)
			if !ok {
				return fmt.Errorf("account %s has no nostr private key", accountID)
			}
			if strings.HasPrefix(priv, crypto.PrivateKeyPrefix+"1") {
				if priv, err = crypto.DecodeNsec(priv); err != nil {
					return err
				}
			}

			blob, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			contentType := mime.TypeByExtension(filepath.Ext(args[0]))

			url, err := appCtx.Media.Upload(cmd.Context(), priv, blob, contentType)
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		},
	}
	cmd.Flags().StringVar(&accountID, "account", "", "nostr account id whose key signs the upload")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}
