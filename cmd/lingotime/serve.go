package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hrygo/lingotime/server"
	"github.com/hrygo/lingotime/server/service/temporal"
	"github.com/hrygo/lingotime/store"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd)
		},
	}
}

func (a *app) runServe(cmd *cobra.Command) error {
	p, err := a.profile()
	if err != nil {
		return err
	}

	var st *store.Store
	if p.AuditEnabled {
		if st, err = openStore(cmd, p); err != nil {
			return err
		}
		defer st.Close()
	}

	svc, err := temporal.NewServiceFromProfile(p, st, a.logger)
	if err != nil {
		return err
	}
	s := server.NewServer(p, svc, a.logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(ctx) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.logger.Info("received shutdown signal", slog.String("cause", context.Cause(ctx).Error()))
	}
	if err := s.Shutdown(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	return <-errCh
}
