package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func AddDaemonConnectionCommandlineArgs(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("daemonUrl", "localhost:50061", "specify the batch daemon url")
	viper.BindPFlag("daemonUrl", rootCmd.PersistentFlags().Lookup("daemonUrl"))
	rootCmd.PersistentFlags().Bool("forceNoTls", false, "connect without TLS even if the daemon is not on localhost")
	viper.BindPFlag("forceNoTls", rootCmd.PersistentFlags().Lookup("forceNoTls"))
}

// LoadCommandlineArgsFromConfigFile merges, in order of increasing precedence, lavactl-defaults.yaml next to the
// executable, the given config file (or ~/.lavactl.yaml if none is given) and the environment.
func LoadCommandlineArgsFromConfigFile(cfgFile string) error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error finding executable path: %s", err)
	} else {
		exeDir := filepath.Dir(exePath)
		viper.SetConfigFile(exeDir + "/lavactl-defaults.yaml")
		err := viper.ReadInConfig()
		if err != nil {
			switch err.(type) {
			case viper.ConfigFileNotFoundError:
			case *os.PathError:
				// No default config is fine
			default:
				return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error reading config file %s: %s", viper.ConfigFileUsed(), err)
			}
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error getting user home directory: %s", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".lavactl")
	}

	viper.SetEnvPrefix("LAVA")
	viper.AutomaticEnv()

	err = viper.MergeInConfig()
	if err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// Only happens when looking for ~/.lavactl.yaml, which users don't have to create.
		default:
			return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error reading config file %s: %s", viper.ConfigFileUsed(), err)
		}
	}
	return nil
}

func ExtractCommandlineDaemonConnectionDetails() *DaemonConnectionDetails {
	connectionDetails := &DaemonConnectionDetails{AppName: "lavactl"}
	viper.Unmarshal(connectionDetails)
	return connectionDetails
}
