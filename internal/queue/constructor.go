package queue

import (
	"time"

	"github.com/maheshrc27/postpilot/internal/service"
)

type Queue struct {
	gs service.GenerationService
}

func NewQueue(gs service.GenerationService) *Queue {
	return &Queue{gs: gs}
}

const TaskTypeGeneratePosts = "generate:posts"

// GeneratePostsPayload mirrors transfer.Trigger on the wire.
type GeneratePostsPayload struct {
	AccountID int64     `json:"account_id,omitempty"`
	DueAt     time.Time `json:"due_at,omitempty"`
}
