package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/11bDev/yall-sub001/internal/domain"
	nostrsvc "github.com/11bDev/yall-sub001/internal/services/nostr"
)

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage stored platform accounts",
	}
	cmd.AddCommand(accountAddCmd(), accountListCmd(), accountRemoveCmd())
	return cmd
}

// account add <platform> <display-name>: prompt-free credential entry
// via flags, then verify before storing.
func accountAddCmd() *cobra.Command {
	var (
		username string
		creds    []string
		skipAuth bool
	)
	cmd := &cobra.Command{
		Use:   "add <platform> <display-name>",
		Short: "Store credentials for a platform account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			platform := domain.Platform(args[0])
			svc, ok := appCtx.Platforms[platform]
			if !ok {
				return fmt.Errorf("unknown platform %q", platform)
			}

			credMap := make(map[string]string, len(creds))
			for _, pair := range creds {
				k, v, found := strings.Cut(pair, "=")
				if !found {
					return fmt.Errorf("credential %q is not key=value", pair)
				}
				credMap[k] = v
			}
			if platform == domain.PlatformNostr {
				if _, ok := credMap[nostrsvc.CredRelays]; !ok {
					credMap[nostrsvc.CredRelays] = strings.Join(appCtx.DefaultRelays, ",")
				}
			}

			acct := domain.NewAccount(platform, args[1], username, credMap)
			if !svc.HasRequiredCredentials(acct) {
				return fmt.Errorf("missing credentials; %s needs: %s",
					platform, strings.Join(svc.RequiredCredentialFields(), ", "))
			}
			if !skipAuth {
				if err := svc.Authenticate(cmd.Context(), acct); err != nil {
					return fmt.Errorf("credential check failed: %w", err)
				}
			}
			if err := appCtx.Accounts.Save(acct); err != nil {
				return err
			}
			fmt.Printf("Account stored: %s (%s)\n", acct.DisplayName, acct.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "platform username or handle")
	cmd.Flags().StringSliceVar(&creds, "cred", nil, "credential as key=value (repeatable)")
	cmd.Flags().BoolVar(&skipAuth, "skip-verify", false, "store without checking the credentials")
	return cmd
}

func accountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show stored accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			accounts, err := appCtx.Accounts.List()
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Println("no accounts stored")
				return nil
			}
			for _, a := range accounts {
				state := "active"
				if !a.Active {
					state = "inactive"
				}
				fmt.Printf("%s  %-8s  %-10s  %s\n", a.ID, a.Platform, state, a.DisplayName)
			}
			return nil
		},
	}
}

func accountRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <account-id>",
		Short: "Delete a stored account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if err := appCtx.Accounts.Delete(args[0]); err != nil {
				return err
			}
			fmt.Println("removed")
			return nil
		},
	}
}
