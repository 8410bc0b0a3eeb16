package relay

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/sapphire-relay/internal/util/command"
)

func New(v *viper.Viper) *cobra.Command {
	return command.NewSubcommandGroup("relay",
		newMnemonic(v),
		newWallet(v),
	)
}
