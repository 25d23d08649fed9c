package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

func (q *Queue) HandleGenerateTask(ctx context.Context, task *asynq.Task) error {
	var payload GeneratePostsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decoding payload: %v: %w", err, asynq.SkipRetry)
	}

	result, err := q.gs.Run(ctx, transfer.Trigger{
		AccountID: payload.AccountID,
		DueAt:     payload.DueAt,
	})
	if err != nil {
		slog.Error("scheduled generation failed", "error", err)
		return err
	}

	slog.Info("scheduled generation done",
		"run_id", result.RunID,
		"accounts", len(result.Results),
		"posted", result.Succeeded(),
	)
	return nil
}
