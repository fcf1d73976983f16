package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tsawler/sentimento"
	"github.com/tsawler/sentimento/internal/api"
	"github.com/tsawler/sentimento/internal/telemetry"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the classification and dataset API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}

			cache, err := a.modelCache()
			if err != nil {
				return err
			}
			session := sentimento.NewSession(a.classifier, a.trainer(),
				sentimento.WithCache(cache),
				sentimento.WithSessionLogger(a.logger))

			if a.cfg.ModelPath != "" {
				model, loadErr := sentimento.ModelFromDisk(a.cfg.ModelPath)
				if loadErr != nil {
					return loadErr
				}
				session.SetModel(model, nil)
				a.logger.Info("model loaded", slog.String("path", a.cfg.ModelPath))
			}

			var opts []api.HandlerOpt
			if a.cfg.UploadRate > 0 {
				opts = append(opts, api.WithUploadLimit(a.cfg.UploadRate, a.cfg.UploadBurst))
			}
			return api.NewServer(a.cfg.Addr, session, telemetry.NewMetrics(), a.logger, opts...).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// modelCache returns a Redis cache when REDIS_ADDRESS is set and an
// in-memory one otherwise.
func (a *app) modelCache() (sentimento.ModelCache, error) {
	if a.cfg.RedisAddress == "" {
		return sentimento.NewMemoryCache(), nil
	}
	client, err := sentimento.NewRedisClient(sentimento.RedisConfig{
		Address:  a.cfg.RedisAddress,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}
	a.logger.Info("model cache", slog.String("redis", a.cfg.RedisAddress), slog.Duration("ttl", a.cfg.CacheTTL))
	return sentimento.NewRedisCache(client, a.cfg.CacheTTL), nil
}
