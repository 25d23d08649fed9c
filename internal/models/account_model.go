package models

import (
	"time"
)

type Account struct {
	ID             int64        `db:"id" json:"id"`
	LinkedInID     string       `db:"linkedin_id" json:"linkedin_id"`
	AccessToken    string       `db:"access_token" json:"-"`
	RefreshToken   string       `db:"refresh_token" json:"-"`
	TokenExpiresAt *time.Time   `db:"token_expires_at" json:"token_expires_at,omitempty"`
	Profile        Profile      `json:"profile"`
	Schedule       Schedule     `json:"schedule"`
	Subscription   Subscription `json:"subscription"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}

type Profile struct {
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Picture string `db:"picture" json:"picture"`
}

type Schedule struct {
	Time     string `db:"schedule_time" json:"time"`
	Timezone string `db:"schedule_timezone" json:"timezone"`
	Enabled  bool   `db:"schedule_enabled" json:"enabled"`
}

type Subscription struct {
	Plan        string `db:"plan" json:"plan"`
	PostsPerDay int    `db:"posts_per_day" json:"posts_per_day"`
}

const (
	DefaultScheduleTime     = "09:00"
	DefaultScheduleTimezone = "UTC"

	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

func DefaultSchedule() Schedule {
	return Schedule{
		Time:     DefaultScheduleTime,
		Timezone: DefaultScheduleTimezone,
		Enabled:  true,
	}
}
