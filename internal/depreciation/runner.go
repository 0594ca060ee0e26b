package depreciation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/assetdesk/asset-management/internal/asset"
	"github.com/assetdesk/asset-management/internal/core/events"
)

// AccrualJob advances one asset's depreciation bookkeeping by one month.
type AccrualJob struct {
	AssetID int64
}

type Worker struct {
	ID         int
	WorkerPool chan chan AccrualJob
	JobChannel chan AccrualJob
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan AccrualJob, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan AccrualJob),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(AccrualJob)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {

			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker processing accrual", "worker_id", w.ID, "asset_id", job.AssetID)
				processFunc(job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

// Runner walks the asset register and advances months-in-use across a worker
// pool, recomputing each asset's depreciation schedule as it goes.
type Runner struct {
	repo      asset.Repository
	eventBus  *events.EventBus
	batchSize int
	logger    *slog.Logger

	jobQueue   chan AccrualJob
	workerPool chan chan AccrualJob
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

type Config struct {
	MaxWorkers   int
	JobQueueSize int
	BatchSize    int
}

func NewRunner(config Config, repo asset.Repository, eventBus *events.EventBus, logger *slog.Logger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	jobQueueSize := config.JobQueueSize
	if jobQueueSize <= 0 {
		jobQueueSize = 100
	}

	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}

	runner := &Runner{
		repo:      repo,
		eventBus:  eventBus,
		batchSize: batchSize,
		logger:    logger,

		maxWorkers: maxWorkers,
		jobQueue:   make(chan AccrualJob, jobQueueSize),
		workerPool: make(chan chan AccrualJob, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	runner.startWorkerPool()

	return runner
}

func (r *Runner) startWorkerPool() {
	r.once.Do(func() {

		for i := 0; i < r.maxWorkers; i++ {
			worker := NewWorker(i, r.workerPool, r.logger)
			worker.Start(r.ctx, &r.wg, r.processAccrualJob)
		}

		go r.dispatch()

		r.logger.Info("depreciation accrual worker pool started",
			"max_workers", r.maxWorkers,
			"queue_size", cap(r.jobQueue))
	})
}

func (r *Runner) dispatch() {
	r.wg.Add(1)
	defer r.wg.Done()

	for {
		select {
		case job := <-r.jobQueue:

			select {
			case jobChannel := <-r.workerPool:

				select {
				case jobChannel <- job:

				case <-r.ctx.Done():
					r.logger.Info("dispatcher shutting down")
					return
				}
			case <-r.ctx.Done():
				r.logger.Info("dispatcher shutting down")
				return
			}
		case <-r.ctx.Done():
			r.logger.Info("dispatcher shutting down")
			return
		}
	}
}

func (r *Runner) Shutdown() {
	r.logger.Info("shutting down depreciation runner")
	r.cancel()
	r.wg.Wait()
	r.logger.Info("depreciation runner shutdown complete")
}

// RunOnce walks the register in batches and queues an accrual job for every
// asset that still has remaining depreciable life.
func (r *Runner) RunOnce(ctx context.Context) (int, error) {
	queued := 0
	offset := 0

	for {
		select {
		case <-ctx.Done():
			return queued, ctx.Err()
		default:
		}

		batch, err := r.repo.GetAll(r.batchSize, offset)
		if err != nil {
			r.logger.Error("failed to load asset batch", "error", err, "offset", offset)
			return queued, err
		}
		if len(batch) == 0 {
			break
		}

		for _, a := range batch {
			if a.NumberOfRemainingMonths <= 0 || a.FullyDepreciated() {
				continue
			}

			if err := r.Enqueue(AccrualJob{AssetID: a.ID}); err != nil {
				r.logger.Warn("accrual queue full, stopping batch walk", "asset_id", a.ID)
				return queued, err
			}
			queued++
		}

		offset += len(batch)
	}

	r.logger.Info("accrual pass queued", "jobs", queued)
	return queued, nil
}

func (r *Runner) Enqueue(job AccrualJob) error {
	select {
	case r.jobQueue <- job:
		return nil
	default:
		return fmt.Errorf("accrual queue full")
	}
}

func (r *Runner) processAccrualJob(job AccrualJob) {
	a, err := r.repo.GetByID(job.AssetID)
	if err != nil {
		r.logger.Error("asset not found for accrual", "error", err, "asset_id", job.AssetID)
		return
	}

	if a.NumberOfRemainingMonths <= 0 || a.FullyDepreciated() {
		r.logger.Debug("asset fully depreciated, skipping", "asset_id", a.ID)
		return
	}

	monthsInUse := a.NumberOfMonthsInUse + 1
	if monthsInUse > a.UsefulLifeMonths {
		monthsInUse = a.UsefulLifeMonths
	}

	schedule, err := asset.ComputeDepreciation(a.TotalAmount, a.DepreciationRate, a.UsefulLifeMonths, monthsInUse)
	if err != nil {
		r.logger.Error("failed to compute depreciation", "error", err, "asset_id", a.ID)
		return
	}

	a.NumberOfMonthsInUse = monthsInUse
	a.ApplySchedule(schedule)

	if err := r.repo.Update(a); err != nil {
		r.logger.Error("failed to persist accrual", "error", err, "asset_id", a.ID)
		return
	}

	r.eventBus.Publish(r.ctx,
		events.NewAssetDepreciatedEvent(a.ID, a.TagNumber, a.NumberOfMonthsInUse, a.AccumulatedDepreciation.String()))

	r.logger.Info("asset depreciation advanced",
		"asset_id", a.ID,
		"tag_number", a.TagNumber,
		"months_in_use", a.NumberOfMonthsInUse,
		"accumulated", a.AccumulatedDepreciation)
}
