package job

import (
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/postpilot/internal/queue"
)

// GenerationJob turns cron ticks into generation tasks on the queue.
type GenerationJob struct {
	enq queue.Enqueuer
	now func() time.Time
}

func NewGenerationJob(enq queue.Enqueuer) *GenerationJob {
	return &GenerationJob{enq: enq, now: time.Now}
}

// EnqueueDue schedules a run for the current hour. Accounts are filtered by their
// own schedule when the task runs.
func (j *GenerationJob) EnqueueDue() {
	dueAt := j.now().UTC().Truncate(time.Hour)

	err := queue.EnqueueGeneration(j.enq, queue.GeneratePostsPayload{DueAt: dueAt})
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			slog.Info("generation already enqueued for this hour", "due_at", dueAt)
			return
		}
		slog.Error("unable to enqueue generation", "error", err)
	}
}
