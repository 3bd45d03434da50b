package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/finreport/logging"
	"github.com/robinvdvleuten/finreport/web"
)

type WebCmd struct {
	Port  int    `help:"Port to listen on." default:"8080" env:"FINREPORT_PORT"`
	Host  string `help:"Interface to bind to." default:"127.0.0.1" env:"FINREPORT_HOST"`
	Watch bool   `help:"Reload the dataset when its files change." default:"true" negatable:""`
}

func (cmd *WebCmd) Run(ctx *kong.Context, globals *Globals) error {
	s := newSession(ctx, globals, "web")
	defer s.finish()

	runCtx, stop := signal.NotifyContext(s.run, os.Interrupt, syscall.SIGTERM)
	defer stop()

	schedules, closeFn, err := s.openSchedules(globals)
	if err != nil {
		return err
	}
	defer closeFn()

	version := Version
	if version == "" {
		version = "dev"
	}
	commitSHA := CommitSHA
	if commitSHA == "" {
		commitSHA = "local"
	}

	server := web.New(cmd.Port, globals.Data, schedules,
		web.WithVersion(version, commitSHA),
		web.WithLogger(logging.FromContext(s.run)),
	)
	server.Host = cmd.Host
	server.WatchEnabled = cmd.Watch

	printInfof(ctx.Stdout, "Starting server on %s:%d", server.Host, server.Port)
	printInfof(ctx.Stdout, "Serving dataset: %s", pathStyle.Render(globals.Data))
	if server.Host != "127.0.0.1" && server.Host != "localhost" {
		printInfof(ctx.Stdout, "The API has no authentication; %s may be reachable from other hosts", server.Host)
	}

	if err := server.Start(runCtx); err != nil {
		return s.fail(err, "server stopped")
	}
	return nil
}
