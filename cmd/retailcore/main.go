// Command retailcore drives the simulated back-office: seed a dataset,
// serve the tool API, or export snapshot artifacts.
package main

import (
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel = "info"

var rootCmd = &cobra.Command{
	Use:   "retailcore",
	Short: "Simulated retail back-office with a transactional tool surface",
	Long: `Retailcore maintains an in-memory retail dataset (suppliers, products,
orders, shipments) behind a fixed set of tools. Setter tools produce
deltas that commit atomically; every committed mutation is audited.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			log.WithError(err).Fatal("cannot parse log-level")
		}
		log.SetLevel(level)
		log.Debug("debug logging enabled")
	},
}

func main() {
	formatter := new(log.TextFormatter)
	formatter.TimestampFormat = "2006-01-02T15:04:05.999Z07:00"
	formatter.FullTimestamp = true
	log.SetFormatter(formatter)

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	rootCmd.AddCommand(
		NewSeedCommand(),
		NewServeCommand(),
		NewExportCommand(),
		NewToolsCommand(),
		NewVersionCommand(),
	)

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (trace,debug,info,warn,error)")

	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Fatal("could not execute root command")
	}
}
