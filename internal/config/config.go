package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"github/chapool/sapphire-relay/internal/apperrors"
)

const EnvPrefix = "RELAY"

// Viper keys. Flags use the same names.
const (
	KeyNetwork        = "network"
	KeyGRPCEndpoint   = "grpc-endpoint"
	KeyGRPCPlaintext  = "grpc-plaintext"
	KeyWeb3URLs       = "web3-urls"
	KeyPollInterval   = "poll-interval"
	KeyTransferDelay  = "transfer-delay"
	KeyRequestsPerSec = "rps"
	KeyRequestBurst   = "burst"
	KeyStatusListen   = "status-listen"
	KeyLogLevel       = "log-level"
	KeyLogJSON        = "log-json"
	KeyExitWindow     = "exit-window"
	KeyNoExitGuard    = "yes-exit"
)

const (
	defaultPollInterval   = 10 * time.Second
	defaultTransferDelay  = time.Millisecond
	defaultRequestsPerSec = 5.0
	defaultRequestBurst   = 10
	defaultExitWindow     = 5 * time.Second
)

type Logger struct {
	Level              zerolog.Level
	PrettyPrintConsole bool
}

// Relay is the full runtime configuration of the relay.
type Relay struct {
	Network Network
	Fees    Fees

	// GRPCPlaintext disables TLS towards the node, for local nodes only.
	GRPCPlaintext bool

	// PollInterval is the delay after a deposit, an idle cycle or a failed cycle.
	PollInterval time.Duration
	// TransferDelay is the delay after forwarding from the intermediate account.
	TransferDelay time.Duration

	RequestsPerSecond float64
	RequestBurst      int

	// StatusListen enables the status HTTP server when non-empty.
	StatusListen string

	// ExitWindow is how long a second interrupt is accepted as confirmation to exit.
	ExitWindow  time.Duration
	NoExitGuard bool

	Logger Logger
}

// SetDefaults registers the compiled-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyNetwork, NetworkMainnet)
	v.SetDefault(KeyPollInterval, defaultPollInterval)
	v.SetDefault(KeyTransferDelay, defaultTransferDelay)
	v.SetDefault(KeyRequestsPerSec, defaultRequestsPerSec)
	v.SetDefault(KeyRequestBurst, defaultRequestBurst)
	v.SetDefault(KeyLogLevel, zerolog.InfoLevel.String())
	v.SetDefault(KeyLogJSON, false)
	v.SetDefault(KeyGRPCPlaintext, false)
	v.SetDefault(KeyExitWindow, defaultExitWindow)
	v.SetDefault(KeyNoExitGuard, false)
}

// NewViper returns a viper instance reading RELAY_* environment variables (after loading .env
// files when present) with defaults applied.
func NewViper(envFiles ...string) *viper.Viper {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// missing .env files are fine
	_ = gotenv.Load(envFiles...)

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	return v
}

// DefaultRelayConfig returns the compiled-in mainnet configuration.
func DefaultRelayConfig() Relay {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadRelayConfig(v)
	if err != nil {
		// defaults are static and always valid
		panic(err)
	}

	return cfg
}

// LoadRelayConfig builds a Relay config from v and validates it.
func LoadRelayConfig(v *viper.Viper) (Relay, error) {
	network, err := LookupNetwork(v.GetString(KeyNetwork))
	if err != nil {
		return Relay{}, apperrors.NewConfig("load config", err)
	}

	if endpoint := strings.TrimSpace(v.GetString(KeyGRPCEndpoint)); endpoint != "" {
		network.GRPCEndpoint = endpoint
	}

	if urls := ParseURLs(v.GetString(KeyWeb3URLs)); len(urls) > 0 {
		network.Web3URLs = urls
	}

	level, err := LogLevel(v)
	if err != nil {
		return Relay{}, err
	}

	cfg := Relay{
		Network:           network,
		Fees:              DefaultFees(),
		GRPCPlaintext:     v.GetBool(KeyGRPCPlaintext),
		PollInterval:      v.GetDuration(KeyPollInterval),
		TransferDelay:     v.GetDuration(KeyTransferDelay),
		RequestsPerSecond: v.GetFloat64(KeyRequestsPerSec),
		RequestBurst:      v.GetInt(KeyRequestBurst),
		StatusListen:      strings.TrimSpace(v.GetString(KeyStatusListen)),
		ExitWindow:        v.GetDuration(KeyExitWindow),
		NoExitGuard:       v.GetBool(KeyNoExitGuard),
		Logger: Logger{
			Level:              level,
			PrettyPrintConsole: !v.GetBool(KeyLogJSON),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Relay{}, err
	}

	return cfg, nil
}

// LogLevel parses the configured log level.
func LogLevel(v *viper.Viper) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString(KeyLogLevel)))
	if err != nil {
		return zerolog.NoLevel, apperrors.NewConfig("load config", errors.Wrapf(err, "invalid %s", KeyLogLevel))
	}

	return level, nil
}

// Validate rejects configurations the relay cannot run with. Failures are configuration errors.
func (r Relay) Validate() error {
	return apperrors.NewConfig("validate config", r.validate())
}

func (r Relay) validate() error {
	switch {
	case r.Network.GRPCEndpoint == "":
		return errors.New("grpc endpoint must not be empty")
	case len(r.Network.Web3URLs) == 0:
		return errors.New("at least one web3 url is required")
	case r.Fees.RuntimeDecimals < r.Fees.ConsensusDecimals:
		return errors.New("runtime decimals must not be lower than consensus decimals")
	case r.Fees.FeeGas == 0:
		return errors.New("fee gas must be positive")
	case r.PollInterval <= 0:
		return errors.Errorf("%s must be positive", KeyPollInterval)
	case r.TransferDelay < 0:
		return errors.Errorf("%s must not be negative", KeyTransferDelay)
	case r.RequestsPerSecond <= 0:
		return errors.Errorf("%s must be positive", KeyRequestsPerSec)
	case r.RequestBurst <= 0:
		return errors.Errorf("%s must be positive", KeyRequestBurst)
	case !r.NoExitGuard && r.ExitWindow <= 0:
		return errors.Errorf("%s must be positive unless %s is set", KeyExitWindow, KeyNoExitGuard)
	}

	return nil
}

// ParseURLs splits a comma separated URL list, dropping blanks.
func ParseURLs(raw string) []string {
	return lo.Compact(lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}
