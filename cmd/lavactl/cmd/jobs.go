package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openlava/openlava-go/internal/lavactl"
)

func jobsCmd(a *lavactl.App) *cobra.Command {
	filter := lavactl.JobsFilter{}
	cmd := &cobra.Command{
		Use:   "jobs [jobId]",
		Short: "List jobs",
		Long: `List the jobs known to the daemon, unfinished ones by default.

At most one of --user, --queue, --host and --name may be given.
Job classes are combined with '|', e.g. --class "pend|susp". Valid classes are
all, cur, done, pend, susp and last.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				filter.JobId = args[0]
			}
			return a.Jobs(cmd.Context(), filter)
		},
	}
	cmd.Flags().StringVarP(&filter.User, "user", "u", "", "only jobs of this user, or \"all\"")
	cmd.Flags().StringVarP(&filter.Queue, "queue", "q", "", "only jobs in this queue")
	cmd.Flags().StringVarP(&filter.Host, "host", "m", "", "only jobs running on this host")
	cmd.Flags().StringVarP(&filter.Name, "name", "J", "", "only jobs with this name")
	cmd.Flags().StringVarP(&filter.Classes, "class", "c", "", "job classes to list")
	cmd.Flags().StringVarP(&filter.Output, "output", "o", lavactl.OutputTable, "output format: table, json or yaml")
	return cmd
}
