package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/openlava/openlava-go/internal/common"
	"github.com/openlava/openlava-go/internal/common/app"
	commonconfig "github.com/openlava/openlava-go/internal/common/config"
	"github.com/openlava/openlava-go/internal/common/logging"
	"github.com/openlava/openlava-go/internal/fakelsbd"
	"github.com/openlava/openlava-go/internal/fakelsbd/configuration"
)

const CustomConfigLocation string = "config"

func init() {
	pflag.StringSlice(CustomConfigLocation, []string{}, "Fully qualified path to application configuration file (for multiple config files repeat this arg or separate paths with commas)")
	pflag.Parse()
}

func main() {
	common.BindCommandlineArguments()

	var config configuration.FakeDaemonConfiguration
	userSpecifiedConfigs := viper.GetStringSlice(CustomConfigLocation)
	common.LoadConfig(&config, "./config/fakelsbd", userSpecifiedConfigs)

	if err := logging.ConfigureLogging(config.Logging); err != nil {
		log.Fatal(err)
	}
	if err := logging.AddPrometheusHook(); err != nil {
		log.Fatal(err)
	}
	if err := config.Validate(); err != nil {
		commonconfig.LogValidationErrors(err)
		os.Exit(-1)
	}

	ctx, cancel := app.CreateContextWithShutdown()
	defer cancel()
	if err := fakelsbd.Serve(ctx, &config); err != nil {
		logging.WithStacktrace(log.NewEntry(log.StandardLogger()), err).Fatal("fake daemon failed")
	}
}
