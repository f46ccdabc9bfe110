package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/openlava/openlava-go/internal/common"
	"github.com/openlava/openlava-go/internal/common/app"
	commonconfig "github.com/openlava/openlava-go/internal/common/config"
	"github.com/openlava/openlava-go/internal/common/database"
	"github.com/openlava/openlava-go/internal/common/logging"
	"github.com/openlava/openlava-go/internal/eventingester"
	"github.com/openlava/openlava-go/internal/eventingester/configuration"
	"github.com/openlava/openlava-go/internal/eventingester/eventdb"
)

const (
	CustomConfigLocation string = "config"
	MigrateDatabase      string = "migrateDatabase"
)

func init() {
	pflag.StringSlice(CustomConfigLocation, []string{}, "Fully qualified path to application configuration file (for multiple config files repeat this arg or separate paths with commas)")
	pflag.Bool(MigrateDatabase, false, "Migrate database instead of ingesting events")
	pflag.Parse()
}

func main() {
	common.BindCommandlineArguments()

	var config configuration.EventIngesterConfiguration
	userSpecifiedConfigs := viper.GetStringSlice(CustomConfigLocation)
	common.LoadConfig(&config, "./config/eventingester", userSpecifiedConfigs)

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

	if viper.GetBool(MigrateDatabase) {
		if err := migrateDatabase(ctx, config); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := eventingester.Run(ctx, &config); err != nil {
		logging.WithStacktrace(log.NewEntry(log.StandardLogger()), err).Fatal("event ingester failed")
	}
}

func migrateDatabase(ctx context.Context, config configuration.EventIngesterConfiguration) error {
	if config.Postgres == nil {
		return errors.New("no postgres configured")
	}
	log.Infof("Opening connection pool to postgres")
	db, err := database.OpenPgxPool(ctx, *config.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()
	migrations, err := eventdb.Migrations()
	if err != nil {
		return err
	}
	return database.UpdateDatabase(ctx, db, migrations)
}
