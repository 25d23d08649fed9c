package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

type mockEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (m *mockEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.tasks = append(m.tasks, task)
	m.opts = append(m.opts, opts)
	return &asynq.TaskInfo{}, nil
}

func optionValue(opts []asynq.Option, typ asynq.OptionType) (any, bool) {
	for _, o := range opts {
		if o.Type() == typ {
			return o.Value(), true
		}
	}
	return nil, false
}

func TestEnqueueGeneration_Scheduled(t *testing.T) {
	enq := &mockEnqueuer{}
	due := time.Date(2025, 12, 25, 9, 0, 0, 0, time.UTC)

	if err := EnqueueGeneration(enq, GeneratePostsPayload{DueAt: due}); err != nil {
		t.Fatalf("EnqueueGeneration: %v", err)
	}
	if len(enq.tasks) != 1 || enq.tasks[0].Type() != TaskTypeGeneratePosts {
		t.Fatalf("tasks = %v", enq.tasks)
	}

	var payload GeneratePostsPayload
	if err := json.Unmarshal(enq.tasks[0].Payload(), &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if !payload.DueAt.Equal(due) {
		t.Errorf("DueAt = %v", payload.DueAt)
	}

	if v, ok := optionValue(enq.opts[0], asynq.MaxRetryOpt); !ok || v.(int) != 0 {
		t.Errorf("MaxRetry = %v, %v", v, ok)
	}
	if v, ok := optionValue(enq.opts[0], asynq.TaskIDOpt); !ok || v.(string) != "generate:posts:0:2025122509" {
		t.Errorf("TaskID = %v, %v", v, ok)
	}
}

func TestEnqueueGeneration_ManualHasNoTaskID(t *testing.T) {
	enq := &mockEnqueuer{}
	if err := EnqueueGeneration(enq, GeneratePostsPayload{AccountID: 3}); err != nil {
		t.Fatalf("EnqueueGeneration: %v", err)
	}
	if _, ok := optionValue(enq.opts[0], asynq.TaskIDOpt); ok {
		t.Error("unscheduled run should not carry a task id")
	}
}

func TestEnqueueGeneration_Error(t *testing.T) {
	enq := &mockEnqueuer{err: asynq.ErrTaskIDConflict}
	err := EnqueueGeneration(enq, GeneratePostsPayload{DueAt: time.Now()})
	if !errors.Is(err, asynq.ErrTaskIDConflict) {
		t.Fatalf("err = %v, want ErrTaskIDConflict", err)
	}
}

type mockGeneration struct {
	got   transfer.Trigger
	runFn func(ctx context.Context, trigger transfer.Trigger) (*transfer.RunResult, error)
}

func (m *mockGeneration) Run(ctx context.Context, trigger transfer.Trigger) (*transfer.RunResult, error) {
	m.got = trigger
	if m.runFn != nil {
		return m.runFn(ctx, trigger)
	}
	return &transfer.RunResult{Success: true, RunID: "run"}, nil
}

func TestHandleGenerateTask(t *testing.T) {
	gen := &mockGeneration{}
	q := NewQueue(gen)
	due := time.Date(2025, 7, 4, 14, 0, 0, 0, time.UTC)

	body, _ := json.Marshal(GeneratePostsPayload{AccountID: 2, DueAt: due})
	if err := q.HandleGenerateTask(context.Background(), asynq.NewTask(TaskTypeGeneratePosts, body)); err != nil {
		t.Fatalf("HandleGenerateTask: %v", err)
	}
	if gen.got.AccountID != 2 || !gen.got.DueAt.Equal(due) {
		t.Errorf("trigger = %+v", gen.got)
	}
}

func TestHandleGenerateTask_Errors(t *testing.T) {
	gen := &mockGeneration{runFn: func(ctx context.Context, trigger transfer.Trigger) (*transfer.RunResult, error) {
		return nil, errors.New("db down")
	}}
	q := NewQueue(gen)

	err := q.HandleGenerateTask(context.Background(), asynq.NewTask(TaskTypeGeneratePosts, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("bad payload err = %v, want SkipRetry", err)
	}

	if err := q.HandleGenerateTask(context.Background(), asynq.NewTask(TaskTypeGeneratePosts, []byte("{}"))); err == nil {
		t.Error("expected run error to propagate")
	}
}
