package worker

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const reapBatchSize = 100

// Reaper purges attachment rows whose task is gone. Attachments carry
// no FK cascade to tasks (uploads land independently of task mutation),
// so deletes leave orphans behind for this pool to sweep.
type Reaper struct {
	pool     *pgxpool.Pool
	logger   *zap.Logger
	count    int
	interval time.Duration
	wg       sync.WaitGroup
	stop     chan struct{}
}

func NewReaper(pool *pgxpool.Pool, logger *zap.Logger, count int, interval time.Duration) *Reaper {
	return &Reaper{
		pool:     pool,
		logger:   logger,
		count:    count,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (r *Reaper) Start(ctx context.Context) {
	r.logger.Info("Starting attachment reaper", zap.Int("workers", r.count))

	for i := 0; i < r.count; i++ {
		r.wg.Add(1)
		go r.worker(ctx, i)
	}
}

func (r *Reaper) Stop() {
	r.logger.Info("Stopping attachment reaper...")
	close(r.stop)
	r.wg.Wait()
	r.logger.Info("Attachment reaper stopped")
}

func (r *Reaper) worker(ctx context.Context, id int) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.reapOnce(ctx, id); err != nil {
				r.logger.Error("reaper error", zap.Int("worker", id), zap.Error(err))
			}
		}
	}
}

// reapOnce claims one batch of orphans with SKIP LOCKED so concurrent
// workers never fight over the same rows.
func (r *Reaper) reapOnce(ctx context.Context, workerID int) error {
	cmd, err := r.pool.Exec(ctx, `
		WITH orphaned AS (
			SELECT a.id
			FROM attachments a
			WHERE NOT EXISTS (SELECT 1 FROM tasks t WHERE t.id = a.task_id)
			ORDER BY a.created_at
			FOR UPDATE SKIP LOCKED
			LIMIT $1
		)
		DELETE FROM attachments
		USING orphaned
		WHERE attachments.id = orphaned.id
	`, reapBatchSize)
	if err != nil {
		return err
	}

	if n := cmd.RowsAffected(); n > 0 {
		r.logger.Info("Purged orphaned attachments",
			zap.Int("worker", workerID),
			zap.Int64("count", n),
		)
	}
	return nil
}
