package transfer

import "time"

type ScheduleUpdate struct {
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
	Enabled  bool   `json:"enabled"`
}

type ManualPost struct {
	Caption   string `json:"caption"`
	ImageURL  string `json:"image_url"`
	AccountID int64  `json:"account_id"`
}

type TodayPost struct {
	ID        int64      `json:"id"`
	Occasion  string     `json:"occasion"`
	Caption   string     `json:"caption"`
	ImageURL  string     `json:"image_url"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	Time      string     `json:"time"`
	PostedAt  *time.Time `json:"posted_at"`
}

type ConnectionStatus struct {
	Connected bool          `json:"connected"`
	User      *StatusUser   `json:"user,omitempty"`
	Schedule  *ScheduleInfo `json:"schedule,omitempty"`
}

type StatusUser struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

type ScheduleInfo struct {
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
	Enabled  bool   `json:"enabled"`
}
