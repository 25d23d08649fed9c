package queue

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of *asynq.Client used to schedule runs.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EnqueueGeneration schedules a generation run. Runs for the same due hour share a task id,
// so a second enqueue for that hour fails with asynq.ErrTaskIDConflict.
func EnqueueGeneration(client Enqueuer, payload GeneratePostsPayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeGeneratePosts, taskPayload)

	opts := []asynq.Option{asynq.MaxRetry(0)}
	if !payload.DueAt.IsZero() {
		opts = append(opts,
			asynq.TaskID(generationTaskID(payload)),
			asynq.Retention(2*time.Hour),
		)
	}

	_, err = client.Enqueue(task, opts...)
	if err != nil {
		return err
	}

	slog.Info("generation task enqueued", "account_id", payload.AccountID, "due_at", payload.DueAt)
	return nil
}

func generationTaskID(payload GeneratePostsPayload) string {
	return fmt.Sprintf("%s:%d:%s", TaskTypeGeneratePosts, payload.AccountID, payload.DueAt.UTC().Format("2006010215"))
}
