package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/11bDev/yall-sub001/internal/domain"
)

// post <content>: publish to every active account on the selected
// platforms. Exits non-zero when every target fails.
func postCmd() *cobra.Command {
	var platforms []string
	cmd := &cobra.Command{
		Use:   "post <content>",
		Short: "Publish content to selected platforms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if len(platforms) == 0 {
				for p := range appCtx.Platforms {
					platforms = append(platforms, string(p))
				}
				sort.Strings(platforms)
			}

			var accounts []domain.Account
			for _, p := range platforms {
				matched, err := appCtx.Accounts.ByPlatform(domain.Platform(p))
				if err != nil {
					return err
				}
				accounts = append(accounts, matched...)
			}
			if len(accounts) == 0 {
				return fmt.Errorf("no active accounts for platforms: %s", strings.Join(platforms, ", "))
			}

			result, err := appCtx.Post.Post(cmd.Context(), args[0], accounts)
			if err != nil {
				return err
			}

			keys := make([]string, 0, len(result.Outcomes))
			for k := range result.Outcomes {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				out := result.Outcomes[k]
				if out.Success {
					fmt.Printf("ok    %s  %s\n", k, out.Message)
					continue
				}
				fmt.Printf("FAIL  %s  [%s] %s\n", k, out.Kind, out.Message)
			}
			fmt.Println(result.Summary())

			if result.AllFailed() {
				return fmt.Errorf("post failed on every target")
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&platforms, "platforms", nil, "platforms to post to (default all)")
	return cmd
}
