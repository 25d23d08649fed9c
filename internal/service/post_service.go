package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/maheshrc27/postpilot/internal/repository"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

type PostService interface {
	TodayPosts(ctx context.Context, accountID int64, now time.Time) ([]transfer.TodayPost, error)
	ManualPublish(ctx context.Context, sessionAccountID int64, mp *transfer.ManualPost) (string, error)
}

type postService struct {
	ar  repository.AccountRepository
	pr  repository.PostRepository
	pub Publisher
}

func NewPostService(ar repository.AccountRepository, pr repository.PostRepository, pub Publisher) PostService {
	return &postService{
		ar:  ar,
		pr:  pr,
		pub: pub,
	}
}

// TodayPosts lists posts created during now's calendar day in now's location, newest first.
func (s *postService) TodayPosts(ctx context.Context, accountID int64, now time.Time) ([]transfer.TodayPost, error) {
	start, end := dayBounds(now)

	posts, err := s.pr.ListByAccountBetween(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]transfer.TodayPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, transfer.TodayPost{
			ID:        p.ID,
			Occasion:  p.Occasion,
			Caption:   p.Caption,
			ImageURL:  p.ImageURL,
			Status:    p.Status,
			CreatedAt: p.CreatedAt,
			Time:      p.CreatedAt.In(now.Location()).Format("3:04:05 PM"),
			PostedAt:  p.PostedAt,
		})
	}

	return out, nil
}

// ManualPublish posts caller-supplied content without storing a Post. The target account
// defaults to the session account and must belong to it.
func (s *postService) ManualPublish(ctx context.Context, sessionAccountID int64, mp *transfer.ManualPost) (string, error) {
	if mp == nil || mp.Caption == "" {
		slog.Info(ErrEmptyCaption.Error())
		return "", ErrEmptyCaption
	}

	accountID := mp.AccountID
	if accountID == 0 {
		accountID = sessionAccountID
	}
	if accountID != sessionAccountID {
		return "", ErrForbidden
	}

	acc, isExist, err := s.ar.GetByID(ctx, accountID)
	if err != nil {
		return "", err
	}
	if !isExist {
		return "", ErrAccountNotFound
	}
	if acc.AccessToken == "" {
		return "", ErrNotConnected
	}

	postID, err := s.pub.Publish(ctx, acc, mp.Caption, mp.ImageURL)
	if err != nil {
		return "", err
	}

	slog.Info("manual post published", "account_id", acc.ID, "linkedin_post_id", postID)
	return postID, nil
}
