package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openlava/openlava-go/internal/lavactl"
)

func eventsCmd(a *lavactl.App) *cobra.Command {
	filter := lavactl.EventsFilter{}
	cmd := &cobra.Command{
		Use:   "events ./path/to/lsb.events",
		Short: "Print the records of an event log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Events(args[0], filter)
		},
	}
	cmd.Flags().StringVarP(&filter.JobId, "job", "j", "", "only events of this job")
	cmd.Flags().BoolVar(&filter.Json, "json", false, "print each record as JSON")
	return cmd
}

func versionCmd(a *lavactl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print client version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Version()
		},
	}
	return cmd
}
