// Package lavactl implements the commands of the lavactl command line tool.
package lavactl

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/openlava/openlava-go/internal/lavactl/build"
	"github.com/openlava/openlava-go/pkg/client"
)

// App is the lavactl application. Each exported method implements one command.
type App struct {
	// Parameters passed to the CLI by the user.
	Params *Params
	// Out is used to write the output. Defaults to standard out,
	// but can be overridden in tests to make assertions on the applications's output.
	Out io.Writer
	// Connect runs action with a client of the daemon. If nil, the daemon described by
	// Params.DaemonConnectionDetails is dialled over gRPC.
	Connect func(ctx context.Context, action func(*client.Client) error) error
}

// Params struct holds all user-customizable parameters.
// Using a single struct for all CLI commands ensures that all flags are distinct
// and that they can be provided either dynamically on a command line, or
// statically in a config file that's reused between command runs.
type Params struct {
	DaemonConnectionDetails *client.DaemonConnectionDetails
	// Number of times a job query is attempted when the daemon cannot be reached
	OpenAttempts uint
	// Delay before the first retry of a job query, doubled for each further one
	OpenRetryDelay time.Duration
}

// New instantiates an App with default parameters writing to standard output.
func New() *App {
	return &App{
		Params: &Params{
			DaemonConnectionDetails: &client.DaemonConnectionDetails{},
			OpenAttempts:            3,
			OpenRetryDelay:          time.Second,
		},
		Out: os.Stdout,
	}
}

func (a *App) withClient(ctx context.Context, action func(*client.Client) error) error {
	if a.Connect != nil {
		return a.Connect(ctx, action)
	}
	return client.WithClient(ctx, a.Params.DaemonConnectionDetails, action)
}

func (a *App) tabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(a.Out, 1, 1, 2, ' ', 0)
}

// Version prints build information (e.g., current git commit) to the app output.
func (a *App) Version() error {
	w := tabwriter.NewWriter(a.Out, 1, 1, 1, ' ', 0)
	defer w.Flush()
	fmt.Fprintf(w, "Version:\t%s\n", build.ReleaseVersion)
	fmt.Fprintf(w, "Commit:\t%s\n", build.GitCommit)
	fmt.Fprintf(w, "Go version:\t%s\n", build.GoVersion)
	fmt.Fprintf(w, "Built:\t%s\n", build.BuildTime)
	return nil
}
