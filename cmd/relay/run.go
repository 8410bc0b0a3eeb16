package relay

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github/chapool/sapphire-relay/internal/api"
	"github/chapool/sapphire-relay/internal/api/router"
	"github/chapool/sapphire-relay/internal/apperrors"
	"github/chapool/sapphire-relay/internal/config"
	"github/chapool/sapphire-relay/internal/ledger"
	"github/chapool/sapphire-relay/internal/metrics"
	"github/chapool/sapphire-relay/internal/report"
	"github/chapool/sapphire-relay/internal/settle"
	"github/chapool/sapphire-relay/internal/util/command"
	"github/chapool/sapphire-relay/internal/wallet/identity"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 5 * time.Second

var errExitRequested = errors.New("exit requested while funds may be mid-relay (deposited but not yet forwarded); interrupt again to exit")

func run(ctx context.Context, v *viper.Viper, provider identity.Provider) error {
	cfg, err := config.LoadRelayConfig(v)
	if err != nil {
		return err
	}

	params, err := settle.ParamsFromConfig(cfg)
	if err != nil {
		return err
	}

	id, err := provider.Derive(ctx)
	if err != nil {
		return err
	}

	conn, err := ledger.DialNode(cfg.Network.GRPCEndpoint, cfg.GRPCPlaintext)
	if err != nil {
		return apperrors.NewConfig("dial node", err)
	}
	defer conn.Close()

	evm, err := ledger.NewEVMClient(cfg.Network.Web3URLs, uint64(cfg.Network.EVMChainID)) //nolint:gosec // chain ids are positive
	if err != nil {
		return apperrors.NewConfig("web3 client", err)
	}
	defer evm.Close()

	metricsService := metrics.New()
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst)
	gateway := ledger.NewGateway(ledger.NewNodeClient(conn), params.RuntimeID, limiter,
		ledger.WithEVMClient(evm),
		ledger.WithObserver(metricsService),
	)

	status := report.NewStatus(cfg.Network.Name)
	reporter := report.Multi{
		report.NewTerminal(os.Stdout, cfg.Network.Name),
		status,
		metricsService,
	}

	engine, err := settle.NewEngine(gateway, id, params, reporter)
	if err != nil {
		return err
	}

	ctx, cancel := command.WithExitGuard(ctx, command.ExitGuard{
		Window:   cfg.ExitWindow,
		Disabled: cfg.NoExitGuard,
		OnWarn: func() {
			reporter.ReportAlert(errExitRequested)
		},
	})
	defer cancel()

	if cfg.StatusListen != "" {
		server := api.NewServer(cfg, status, metricsService, gateway)
		router.Init(server)

		go func() {
			log.Info().Str("listen", cfg.StatusListen).Msg("Starting status server")
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Status server stopped")
			}
		}()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	return engine.Run(ctx)
}
