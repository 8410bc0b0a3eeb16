package probe

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/sapphire-relay/internal/apperrors"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Checks a running relay has observed balances, through its status server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statusURL, _ := cmd.Flags().GetString(statusURLFlag)
			if statusURL == "" {
				return apperrors.NewConfig("readiness probe", errors.Errorf("--%s is required", statusURLFlag))
			}
			timeout, _ := cmd.Flags().GetDuration(timeoutFlag)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			result, err := probeHTTP(ctx, http.DefaultClient, statusURL, "/-/ready")
			if err != nil {
				return err
			}

			report(cmd, "readiness", result)
			return nil
		},
	}

	addFlags(cmd)

	return cmd
}
