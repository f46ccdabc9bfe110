package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openlava/openlava-go/internal/lavactl"
)

func queuesCmd(a *lavactl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queues [queue...]",
		Short: "Describe queues and the jobs in them",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Queues(cmd.Context(), args)
		},
	}
	return cmd
}

func hostsCmd(a *lavactl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hosts [host...]",
		Short: "Describe batch hosts and the jobs on them",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Hosts(cmd.Context(), args)
		},
	}
	return cmd
}

func usersCmd(a *lavactl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users [user...]",
		Short: "Describe users and their jobs",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Users(cmd.Context(), args)
		},
	}
	return cmd
}

func clusterCmd(a *lavactl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Print the cluster name and master host",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Cluster(cmd.Context())
		},
	}
	return cmd
}
