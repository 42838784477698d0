package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr           string
	ReloadInterval time.Duration
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("PRPULSE_ADDR"),
			Destination: &s.Addr,
		},
		&cli.DurationFlag{
			Name:        "reload-interval",
			Usage:       "Re-read the CSV periodically (e.g. 5m, 0 disables)",
			Sources:     cli.EnvVars("PRPULSE_RELOAD_INTERVAL"),
			Destination: &s.ReloadInterval,
		},
	}
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Duration("reload_interval", s.ReloadInterval),
	)
}
