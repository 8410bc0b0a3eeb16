// Package metrics exposes relay activity as prometheus collectors.
package metrics

import (
	"math/big"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github/chapool/sapphire-relay/internal/settle"
	"github/chapool/sapphire-relay/internal/wallet/identity"
)

const namespace = "sapphire_relay"

// Service collects relay metrics on its own registry. It implements settle.Reporter and
// ledger.Observer.
type Service struct {
	registry *prometheus.Registry

	cycles      *prometheus.CounterVec
	alerts      prometheus.Counter
	balances    *prometheus.GaugeVec
	moved       *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
	rpcErrors   *prometheus.CounterVec
	lastCycle   prometheus.Gauge
}

func New() *Service {
	s := &Service{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Completed relay cycles by action.",
		}, []string{"action", "skipped"}),
		alerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_total",
			Help:      "Failed relay cycles.",
		}),
		balances: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "balance",
			Help:      "Last observed balance per account, in whole tokens.",
		}, []string{"role", "address"}),
		moved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moved_base_units_total",
			Help:      "Amount moved per action, in base units of the receiving ledger.",
		}, []string{"action"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Duration of ledger calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		rpcErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_errors_total",
			Help:      "Failed ledger calls.",
		}, []string{"method"}),
		lastCycle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_observed_timestamp_seconds",
			Help:      "Unix time of the last successful observation.",
		}),
	}

	s.registry.MustRegister(
		s.cycles,
		s.alerts,
		s.balances,
		s.moved,
		s.rpcDuration,
		s.rpcErrors,
		s.lastCycle,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return s
}

func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// Handler serves the registry in the prometheus text format.
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

func (s *Service) ReportSecret(identity.Secret) {}

func (s *Service) ReportBalances(snapshot settle.Snapshot) {
	s.setBalance(snapshot.Source)
	if snapshot.Intermediate != nil {
		s.setBalance(*snapshot.Intermediate)
	}
	s.setBalance(snapshot.Destination)
	s.lastCycle.Set(float64(snapshot.ObservedAt.Unix()))
}

func (s *Service) ReportAction(result settle.Result) {
	skipped := "false"
	if result.Skipped {
		skipped = "true"
	}
	s.cycles.WithLabelValues(result.Action.String(), skipped).Inc()

	if result.Action != settle.ActionIdle && !result.Skipped && result.Amount != nil {
		f, _ := new(big.Float).SetInt(result.Amount).Float64()
		s.moved.WithLabelValues(result.Action.String()).Add(f)
	}
}

func (s *Service) ReportAlert(error) {
	s.alerts.Inc()
}

// ObserveRPC records one ledger call.
func (s *Service) ObserveRPC(method string, took time.Duration, err error) {
	s.rpcDuration.WithLabelValues(method).Observe(took.Seconds())
	if err != nil {
		s.rpcErrors.WithLabelValues(method).Inc()
	}
}

func (s *Service) setBalance(b settle.Balance) {
	if b.Amount == nil {
		return
	}

	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(b.Decimals)), nil))
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(b.Amount), scale).Float64()
	s.balances.WithLabelValues(string(b.Role), b.Address).Set(f)
}
