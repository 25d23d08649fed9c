package models

import "time"

type Post struct {
	ID             int64      `db:"id" json:"id"`
	AccountID      int64      `db:"account_id" json:"account_id"`
	Occasion       string     `db:"occasion" json:"occasion"`
	Caption        string     `db:"caption" json:"caption"`
	ImageURL       string     `db:"image_url" json:"image_url"`
	ImagePrompt    string     `db:"image_prompt" json:"image_prompt"`
	LinkedInPostID string     `db:"linkedin_post_id" json:"linkedin_post_id"`
	Status         string     `db:"status" json:"status"` // generated, posted, failed
	ScheduledFor   time.Time  `db:"scheduled_for" json:"scheduled_for"`
	PostedAt       *time.Time `db:"posted_at" json:"posted_at"`
	Error          string     `db:"error" json:"error,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

const (
	PostStatusGenerated = "generated"
	PostStatusPosted    = "posted"
	PostStatusFailed    = "failed"
)

// MarkPosted moves a generated post to its successful terminal state.
func (p *Post) MarkPosted(linkedInPostID string, at time.Time) {
	p.Status = PostStatusPosted
	p.LinkedInPostID = linkedInPostID
	p.PostedAt = &at
	p.Error = ""
}

// MarkFailed moves a generated post to its failed terminal state.
func (p *Post) MarkFailed(message string) {
	if message == "" {
		message = "unknown publish error"
	}
	p.Status = PostStatusFailed
	p.LinkedInPostID = ""
	p.PostedAt = nil
	p.Error = message
}
