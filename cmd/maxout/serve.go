package maxout

import (
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/saadjs/maxout/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		host string
		port int
	)
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the session over HTTP until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			srv, err := server.NewServer(server.NewServerParams{
				Config:      &cfg,
				Session:     a.session,
				VersionInfo: versionInfo(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := srv.ListenAndServe(ctx); err != nil {
				return err
			}
			log.Info("server stopped")
			return nil
		},
	}
	serveCmd.Flags().StringVar(&host, "host", "", "Listen host (overrides config)")
	serveCmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides config)")
	return serveCmd
}
