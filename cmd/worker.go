package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	assetPostgres "github.com/assetdesk/asset-management/internal/asset/postgres"
	"github.com/assetdesk/asset-management/internal/core/events"
	"github.com/assetdesk/asset-management/internal/depreciation"
	"github.com/assetdesk/asset-management/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start worker pools for various services",
	Long:  `Start and manage worker pools for background jobs like depreciation accrual.`,
}

// Depreciation accrual worker command
var accrualWorkerCmd = &cobra.Command{
	Use:   "accrual",
	Short: "Start depreciation accrual worker pool",
	Long:  `Walk the asset register and advance monthly depreciation bookkeeping across a worker pool`,
	Run: func(cmd *cobra.Command, args []string) {
		startAccrualWorker()
	},
}

// Event Bus worker command
var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start event bus worker",
	Long:  `Start the event bus `,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

var (
	maxWorkers   int
	jobQueueSize int
	batchSize    int
)

func startAccrualWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := initGorm(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init gorm: %v\n", err)
		os.Exit(1)
	}

	// Use command line flags if provided, otherwise use config values
	accrualConfig := depreciation.Config{
		MaxWorkers:   getIntFlag(maxWorkers, config.Accrual.MaxWorkers),
		JobQueueSize: getIntFlag(jobQueueSize, config.Accrual.JobQueueSize),
		BatchSize:    getIntFlag(batchSize, config.Accrual.BatchSize),
	}

	logger.Info("starting accrual worker",
		"max_workers", accrualConfig.MaxWorkers,
		"job_queue_size", accrualConfig.JobQueueSize,
		"batch_size", accrualConfig.BatchSize)

	eventBus := events.NewEventBus(logger)
	assetRepo := assetPostgres.NewAssetRepository(gormDB)
	runner := depreciation.NewRunner(accrualConfig, assetRepo, eventBus, logger)

	queued, err := runner.RunOnce(context.Background())
	if err != nil {
		logger.Error("accrual pass failed", "error", err)
	}
	logger.Info("accrual pass dispatched", "jobs", queued)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("accrual worker is running. Press Ctrl+C to stop.")

	// wait for shutdown signal
	sig := <-sigChan
	logger.Info("received signal, shutting down accrual worker", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownDone := make(chan struct{})
	go func() {
		runner.Shutdown()
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		logger.Info("accrual worker pool shutdown complete")
	case <-ctx.Done():
		logger.Warn("shutdown timeout reached, forcing exit")
	}
}

func startEventWorker() {
	_, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logger.LoggerWrapper()

	eventBus := events.NewEventBus(logger)

	// Audit log every domain event that crosses the bus.
	auditTypes := []string{
		events.EventTypeRequestCreated,
		events.EventTypeRequestStatusChanged,
		events.EventTypeAssetRegistered,
		events.EventTypeAssetDepreciated,
	}
	for _, eventType := range auditTypes {
		eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			logger.Info("domain event observed",
				"event_id", event.EventID(),
				"event_type", event.EventType(),
				"payload", event.Payload())
			return nil
		})
	}

	logger.Info("event bus worker started. Waiting for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("event bus is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	logger.Info("received signal, shutting down event bus", "signal", sig)
	logger.Info("event bus shutdown complete")
}

func getIntFlag(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func init() {
	accrualWorkerCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Maximum number of workers (overrides config)")
	accrualWorkerCmd.Flags().IntVar(&jobQueueSize, "job-queue-size", 0, "Job queue buffer size (overrides config)")
	accrualWorkerCmd.Flags().IntVar(&batchSize, "batch-size", 0, "Register walk batch size (overrides config)")

	workerCmd.AddCommand(accrualWorkerCmd)
	workerCmd.AddCommand(eventWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
