package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/logging"
	"github.com/abhisek/tutor/internal/profile"
	"github.com/abhisek/tutor/internal/server"
	"github.com/abhisek/tutor/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve tutoring sessions over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := current.cfg
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		registry := server.NewRegistry(func(p profile.Profile) (*tutor.Session, error) {
			return newSession(d.provider, p)
		})
		srv := server.New(server.Config{
			Addr:         cfg.Server.Addr,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}, registry, logging.Component(current.logger, "server"))

		return srv.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
