package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openlava/openlava-go/internal/lavactl"
	"github.com/openlava/openlava-go/pkg/client"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lavactl",
		Short: "lavactl queries and submits jobs to an openlava batch daemon.",
		Long: `lavactl queries and submits jobs to an openlava batch daemon.

Persistent config can be saved in a config file so it doesn't have to be specified every command.

Example structure:
daemonUrl: localhost:50061
forceNoTls: true

The location of this file can be passed in using the --config argument.
If not provided, $HOME/.lavactl.yaml is used.`,
		SilenceUsage: true,
	}

	client.AddDaemonConnectionCommandlineArgs(cmd)
	cmd.PersistentFlags().String("config", "", "config file (default is $HOME/.lavactl.yaml)")
	cmd.PersistentFlags().Uint("openAttempts", 3, "attempts made to query jobs while the daemon is unreachable")
	viper.BindPFlag("openAttempts", cmd.PersistentFlags().Lookup("openAttempts"))
	cmd.PersistentFlags().Duration("openRetryDelay", 0, "delay before the first retry of a job query (default 1s)")
	viper.BindPFlag("openRetryDelay", cmd.PersistentFlags().Lookup("openRetryDelay"))

	cmd.AddCommand(
		jobsCmd(lavactl.New()),
		submitCmd(lavactl.New()),
		modifyCmd(lavactl.New()),
		eventsCmd(lavactl.New()),
		queuesCmd(lavactl.New()),
		hostsCmd(lavactl.New()),
		usersCmd(lavactl.New()),
		clusterCmd(lavactl.New()),
		versionCmd(lavactl.New()),
	)

	return cmd
}

func initParams(cmd *cobra.Command, params *lavactl.Params) error {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if err := client.LoadCommandlineArgsFromConfigFile(configFile); err != nil {
		return err
	}
	params.DaemonConnectionDetails = client.ExtractCommandlineDaemonConnectionDetails()
	if attempts := viper.GetUint("openAttempts"); attempts > 0 {
		params.OpenAttempts = attempts
	}
	if delay := viper.GetDuration("openRetryDelay"); delay > 0 {
		params.OpenRetryDelay = delay
	}
	return nil
}
