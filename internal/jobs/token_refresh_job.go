package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/repository"
	"github.com/maheshrc27/postpilot/internal/service"
)

const refreshConcurrency = 10

type TokenRefreshJob struct {
	ar repository.AccountRepository
	li service.LinkedInService
}

func NewTokenRefreshJob(ar repository.AccountRepository, li service.LinkedInService) *TokenRefreshJob {
	return &TokenRefreshJob{
		ar: ar,
		li: li,
	}
}

// RefreshTokens renews access tokens expiring within the next 30 minutes.
func (c *TokenRefreshJob) RefreshTokens() {
	ctx := context.Background()

	accounts, err := c.ar.ListExpiring(ctx, time.Now().Add(30*time.Minute))
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, refreshConcurrency)

	for _, acc := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.Account) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := c.li.RefreshToken(ctx, acc); err != nil {
				slog.Info("Unable to refresh tokens for LinkedIn", "account_id", acc.ID, "error", err)
			}
		}(acc)
	}

	wg.Wait()
}
