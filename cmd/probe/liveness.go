package probe

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/sapphire-relay/internal/apperrors"
	"github/chapool/sapphire-relay/internal/config"
	"github/chapool/sapphire-relay/internal/ledger"
)

func newLiveness(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Checks the node answers, through the status server when --status-url is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statusURL, _ := cmd.Flags().GetString(statusURLFlag)
			timeout, _ := cmd.Flags().GetDuration(timeoutFlag)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if statusURL != "" {
				result, err := probeHTTP(ctx, http.DefaultClient, statusURL, "/-/healthy")
				if err != nil {
					return err
				}
				report(cmd, "liveness", result)
				return nil
			}

			cfg, err := config.LoadRelayConfig(v)
			if err != nil {
				return err
			}

			conn, err := ledger.DialNode(cfg.Network.GRPCEndpoint, cfg.GRPCPlaintext)
			if err != nil {
				return apperrors.NewConfig("dial node", err)
			}
			defer conn.Close()

			if err := ledger.NewGateway(ledger.NewNodeClient(conn), nil, nil).Ping(ctx); err != nil {
				return err
			}

			report(cmd, "liveness", "node "+cfg.Network.GRPCEndpoint+" answered")
			return nil
		},
	}

	addFlags(cmd)

	return cmd
}
