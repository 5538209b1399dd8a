package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/kitesurf-admin/internal/queue"
)

func newConsumeCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "consume-events",
		Short: "Append booking change events from RabbitMQ to an audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.RabbitMQURL == "" {
				return errors.New("RABBITMQ_URL is not set")
			}
			var w io.Writer = os.Stdout
			if out != "" && out != "-" {
				f, err := os.OpenFile(out, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return fmt.Errorf("open audit log: %w", err)
				}
				defer f.Close()
				w = f
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c := &queue.Consumer{URL: a.cfg.RabbitMQURL, Queue: a.cfg.BookingQueue, Out: w, Log: a.log}
			a.log.Info("consuming booking events", zap.String("queue", a.cfg.BookingQueue), zap.String("out", out))
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "audit log file, - for stdout")
	return cmd
}
