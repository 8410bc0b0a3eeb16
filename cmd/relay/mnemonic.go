package relay

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/sapphire-relay/internal/apperrors"
	"github/chapool/sapphire-relay/internal/wallet"
	"github/chapool/sapphire-relay/internal/wallet/identity"
	"github/chapool/sapphire-relay/internal/wallet/keystore"
	"github/chapool/sapphire-relay/internal/wallet/seed"
)

const (
	destinationFlag = "destination"
	keystoreFlag    = "keystore"
	// keyMnemonic is read from RELAY_MNEMONIC only, never from a flag
	keyMnemonic = "mnemonic"
)

func newMnemonic(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Relay through a generated consensus account and an intermediate Sapphire account",
		Long: `Derives a consensus source account and an intermediate Sapphire account from one
mnemonic. ROSE sent to the source account is deposited into the intermediate account
and forwarded to the destination.

The mnemonic is generated on first start and printed once. Use --keystore to keep it
encrypted on disk, or RELAY_MNEMONIC to restart with a known one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			destination, _ := cmd.Flags().GetString(destinationFlag)
			keystorePath, _ := cmd.Flags().GetString(keystoreFlag)

			seeds := seed.NewManager()
			defer seeds.Clear()

			if mnemonic := v.GetString(keyMnemonic); mnemonic != "" {
				if err := seeds.Initialize(mnemonic); err != nil {
					return apperrors.NewConfig("load mnemonic", err)
				}
			}

			if keystorePath != "" {
				ks, err := keystore.NewService(keystorePath, keystore.DefaultScryptParams())
				if err != nil {
					return apperrors.NewConfig("open keystore", err)
				}
				if err := wallet.InitializeKeystore(cmd.Context(), seeds, ks, wallet.TerminalPassword); err != nil {
					return apperrors.NewConfig("unlock keystore", err)
				}
			}

			if destination == "" {
				var err error
				destination, err = identity.PromptDestination(os.Stdin, os.Stdout)
				if err != nil {
					return apperrors.NewConfig("read destination", err)
				}
			}

			return run(cmd.Context(), v, &identity.MnemonicProvider{
				Seeds:       seeds,
				Destination: destination,
			})
		},
	}

	cmd.Flags().String(destinationFlag, "", "Sapphire 0x address that receives the funds, prompted when empty")
	cmd.Flags().String(keystoreFlag, "", "encrypted keystore file holding the mnemonic, created when missing")

	return cmd
}
