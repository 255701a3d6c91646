package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vypar/app/jobs"
	"github.com/shashiranjanraj/vypar/config"
	"github.com/shashiranjanraj/vypar/pkg/cache"
	"github.com/shashiranjanraj/vypar/pkg/logger"
	"github.com/shashiranjanraj/vypar/pkg/queue"
)

// vypar queue:work — run queue workers without the HTTP server. Only useful
// with the redis driver; the memory driver's queue is process-local.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Run queue workers standalone (requires QUEUE_DRIVER=redis)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		cache.Connect()

		if config.QueueDriver() == "redis" {
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		} else {
			logger.Warn("queue:work with the memory driver only drains jobs pushed by this process")
		}
		queue.Register("jobs.PaymentReceiptJob", func() queue.Job { return &jobs.PaymentReceiptJob{} })

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		queue.StartWorkers(ctx, 4)
		<-ctx.Done()
		return nil
	},
}
