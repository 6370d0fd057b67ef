package main

import (
	"context"

	"laborreport/internal/modkit"
	"laborreport/internal/platform/config"
	"laborreport/internal/platform/logger"
	phttp "laborreport/internal/platform/net/http"
	metahttp "laborreport/internal/services/meta/http"
	metamod "laborreport/internal/services/meta/module"
	reportsmod "laborreport/internal/services/reports/module"

	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored reports read-only over HTTP",
		Long: `serve exposes the report store as JSON:

  GET /reports                      summaries of every stored report
  GET /reports/{index|name}         one report's values
  GET /reports/{index|name}/summary mean and deviation of one report
  GET /meta/health, /meta/ready, /meta/version, /meta/service

Reports are still written only by the get command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.opts.HTTPAddr
			}
			deps := modkit.Deps{Log: logger.Get(), Cfg: config.New().Prefix("LABOR_")}
			svc := a.readOnly()
			srv := phttp.NewServer(phttp.ServerOptions{Addr: addr, AllowedOrigins: a.opts.HTTPOrigins})

			mods := []modkit.Module{
				metamod.New(deps, map[string]metahttp.Check{
					"store": func(ctx context.Context) error {
						_, err := svc.List(ctx)
						return err
					},
				}),
				reportsmod.New(deps, svc),
			}
			for _, m := range mods {
				m.MountRoutes(srv.Router())
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default LABOR_HTTP_ADDR or "+phttp.DefaultAddr+")")
	return cmd
}
