package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/11bDev/yall-sub001/internal/crypto"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a nostr keypair",
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := crypto.GenerateKeyPair()
			if err != nil {
				return err
			}
			nsec, err := crypto.EncodeNsec(kp.PrivateKey)
			if err != nil {
				return err
			}
			npub, err := crypto.EncodeNpub(kp.PublicKey)
			if err != nil {
				return err
			}
			fmt.Printf("private key (hex): %s\n", kp.PrivateKey)
			fmt.Printf("private key:       %s\n", nsec)
			fmt.Printf("public key (hex):  %s\n", kp.PublicKey)
			fmt.Printf("public key:        %s\n", npub)
			fmt.Println("\nKeep the private key secret. Anyone holding it can post as you.")
			return nil
		},
	}
}
