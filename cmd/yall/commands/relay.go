package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func relayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Work with nostr relays",
	}
	cmd.AddCommand(relayTestCmd())
	return cmd
}

// relay test [url...]: probe the given relays, or the configured
// defaults when none are named.
func relayTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test [url...]",
		Short: "Probe relays for reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			relays := args
			if len(relays) == 0 {
				relays = appCtx.DefaultRelays
			}
			if len(relays) == 0 {
				return fmt.Errorf("no relays to test")
			}

			failures := 0
			for _, r := range relays {
				if appCtx.Relays.TestConnection(cmd.Context(), r) {
					fmt.Printf("ok    %s\n", r)
					continue
				}
				failures++
				fmt.Printf("FAIL  %s\n", r)
			}
			if failures == len(relays) {
				return fmt.Errorf("no relay reachable")
			}
			return nil
		},
	}
}
