package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"retailcore/internal/core"
	"retailcore/internal/httpapi"
	"retailcore/internal/seed"
)

// NewServeCommand loads a dataset and serves the tool API over HTTP.
func NewServeCommand() *cobra.Command {
	dataDir := "./data"
	policyPath := ""
	listenAddr := ":8080"

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := seed.Load(dataDir)
			if err != nil {
				return err
			}
			store := core.NewStore(nil)
			if err := store.Import(snapshot); err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector())
			service := core.NewService(store,
				core.WithMetrics(core.NewPrometheusMetricsRecorder(registry)),
				core.WithLogger(log.WithField("component", "service")),
			)

			policy := seed.DefaultPolicy
			if policyPath != "" {
				policy, err = seed.LoadPolicy(policyPath)
				if err != nil {
					return err
				}
			}

			server := httpapi.NewServer(service, policy, registry, log.WithField("component", "httpapi"))
			srv := &http.Server{
				Addr:              listenAddr,
				Handler:           server.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			log.WithField("addr", listenAddr).Info("serving tool API")
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", dataDir, "Directory holding the dataset")
	cmd.Flags().StringVar(&policyPath, "policy", policyPath, "Path to a policy document (default: embedded)")
	cmd.Flags().StringVar(&listenAddr, "listen", listenAddr, "Address to serve the API on")
	return cmd
}
