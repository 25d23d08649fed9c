package transfer

import "time"

// Trigger selects the candidate accounts of a generation run.
// AccountID zero means every account with an enabled schedule.
// A non-zero DueAt keeps only accounts whose schedule hour matches DueAt in their timezone.
type Trigger struct {
	AccountID int64     `json:"account_id,omitempty"`
	DueAt     time.Time `json:"due_at,omitempty"`
}

type AccountOutcome struct {
	AccountID   int64  `json:"account_id"`
	AccountName string `json:"account_name"`
	Success     bool   `json:"success"`
	PostID      int64  `json:"post_id,omitempty"`
	Status      string `json:"status,omitempty"`
	Error       string `json:"error,omitempty"`
}

type RunResult struct {
	Success   bool             `json:"success"`
	RunID     string           `json:"run_id"`
	Occasion  string           `json:"occasion"`
	Message   string           `json:"message,omitempty"`
	Results   []AccountOutcome `json:"results"`
	Timestamp time.Time        `json:"timestamp"`
}

// Succeeded counts outcomes whose post reached the posted state.
func (r *RunResult) Succeeded() int {
	n := 0
	for _, o := range r.Results {
		if o.Success {
			n++
		}
	}
	return n
}
