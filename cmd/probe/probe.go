package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/sapphire-relay/internal/util/command"
)

const (
	verboseFlag   string = "verbose"
	statusURLFlag string = "status-url"
	timeoutFlag   string = "timeout"

	defaultTimeout = 5 * time.Second
)

var ErrProbeFailed = errors.New("probe failed")

func New(v *viper.Viper) *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(v),
		newReadiness(),
	)
}

func addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP(verboseFlag, "v", false, "print the probe result")
	cmd.Flags().String(statusURLFlag, "", "base URL of a running status server, e.g. http://127.0.0.1:8080")
	cmd.Flags().Duration(timeoutFlag, defaultTimeout, "probe timeout")
}

// probeHTTP runs GET path against the status server and fails on any non-200 answer.
func probeHTTP(ctx context.Context, client *http.Client, baseURL string, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+path, nil)
	if err != nil {
		return "", errors.Wrap(err, "build probe request")
	}

	res, err := client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "probe request")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1024))
	if err != nil {
		return "", errors.Wrap(err, "read probe response")
	}

	if res.StatusCode != http.StatusOK {
		return string(body), errors.Wrapf(ErrProbeFailed, "%s answered %d: %s", path, res.StatusCode, body)
	}

	return string(body), nil
}

func report(cmd *cobra.Command, name string, result string) {
	if verbose, _ := cmd.Flags().GetBool(verboseFlag); verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, result)
	}
}
