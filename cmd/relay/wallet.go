package relay

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/sapphire-relay/internal/apperrors"
	"github/chapool/sapphire-relay/internal/config"
	"github/chapool/sapphire-relay/internal/wallet/identity"
)

const (
	originFlag    = "origin"
	defaultOrigin = "http://localhost"
	// keyPrivateKey is read from RELAY_PRIVATE_KEY only, never from a flag
	keyPrivateKey = "private-key"
)

func newWallet(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Relay straight into the Sapphire account of an Ethereum wallet",
		Long: `Derives a consensus source account from a sign-in signature of an Ethereum wallet.
ROSE sent to the source account is deposited straight into the wallet's own Sapphire
account.

With RELAY_PRIVATE_KEY set the signature is made locally. Otherwise the sign-in message
is printed and the wallet address and signature are read from the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			origin, _ := cmd.Flags().GetString(originFlag)

			network, err := config.LookupNetwork(v.GetString(config.KeyNetwork))
			if err != nil {
				return apperrors.NewConfig("load network", err)
			}

			var signer identity.WalletSigner = &identity.PromptWallet{Stdin: os.Stdin, Stdout: os.Stdout}
			if hexKey := v.GetString(keyPrivateKey); hexKey != "" {
				local, err := identity.NewLocalWallet(hexKey)
				if err != nil {
					return apperrors.NewConfig("load wallet", err)
				}
				signer = local
			}

			return run(cmd.Context(), v, &identity.SignatureProvider{
				Wallet:  signer,
				Origin:  origin,
				ChainID: uint64(network.EVMChainID), //nolint:gosec // chain ids are positive
			})
		},
	}

	cmd.Flags().String(originFlag, defaultOrigin, "origin the sign-in message is issued for")

	return cmd
}
