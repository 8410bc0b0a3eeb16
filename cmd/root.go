package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github/chapool/sapphire-relay/cmd/probe"
	"github/chapool/sapphire-relay/cmd/relay"
	"github/chapool/sapphire-relay/internal/apperrors"
	"github/chapool/sapphire-relay/internal/config"
	"github/chapool/sapphire-relay/internal/util"
)

const (
	exitOperational = 1
	exitConfig      = 2
)

const configFileFlag = "config"

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	v := config.NewViper()
	rootCmd := newRoot(v)

	rootCmd.AddCommand(
		relay.New(v),
		probe.New(v),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		if apperrors.IsConfig(err) {
			os.Exit(exitConfig)
		}
		os.Exit(exitOperational)
	}
}

func newRoot(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Version: config.GetFormattedBuildArgs(),
		Use:     "sapphire-relay",
		Short:   config.ModuleName,
		Long: fmt.Sprintf(`%v

Relays ROSE from an Oasis consensus account into a Sapphire account.
Configuration is read from flags, RELAY_* environment variables, an optional
.env file and an optional config file.`, config.ModuleName),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if path, _ := cmd.Flags().GetString(configFileFlag); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return apperrors.NewConfig("read config file", errors.Wrap(err, path))
				}
			}

			level, err := config.LogLevel(v)
			if err != nil {
				return err
			}
			util.ConfigureLogger(os.Stderr, level, !v.GetBool(config.KeyLogJSON))

			return nil
		},
	}
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := cmd.PersistentFlags()
	flags.String(configFileFlag, "", "config file (yaml, toml or json)")
	flags.String(config.KeyNetwork, config.NetworkMainnet, fmt.Sprintf("network preset %v", config.NetworkNames()))
	flags.String(config.KeyGRPCEndpoint, "", "Oasis node gRPC endpoint (host:port), overrides the preset")
	flags.Bool(config.KeyGRPCPlaintext, false, "connect to the node without TLS")
	flags.String(config.KeyWeb3URLs, "", "comma separated Sapphire Web3 endpoints, overrides the preset")
	flags.Duration(config.KeyPollInterval, 0, "delay between balance checks")
	flags.Duration(config.KeyTransferDelay, 0, "delay after forwarding from the intermediate account")
	flags.Float64(config.KeyRequestsPerSec, 0, "node and Web3 requests per second")
	flags.Int(config.KeyRequestBurst, 0, "request burst size")
	flags.String(config.KeyStatusListen, "", "address of the status HTTP server, disabled when empty")
	flags.String(config.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	flags.Bool(config.KeyLogJSON, false, "log JSON lines instead of console output")
	flags.Duration(config.KeyExitWindow, 0, "how long a second interrupt confirms exiting")
	flags.Bool(config.KeyNoExitGuard, false, "exit on the first interrupt")

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == configFileFlag {
			return
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			log.Fatal().Err(err).Str("flag", f.Name).Msg("Failed to bind flag")
		}
	})

	return cmd
}
