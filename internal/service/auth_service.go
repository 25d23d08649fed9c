package service

import (
	"context"
	"errors"
	"log/slog"

	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/repository"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

type AuthService interface {
	LinkedInCallback(ctx context.Context, code string) (int64, error)
	Status(ctx context.Context, accountID int64) (*transfer.ConnectionStatus, error)
	LiveProfile(ctx context.Context, accountID int64) (*transfer.LinkedInUserInfo, error)
}

type authService struct {
	cfg config.Config
	ar  repository.AccountRepository
	li  LinkedInService
}

func NewAuthService(cfg config.Config, ar repository.AccountRepository, li LinkedInService) AuthService {
	return &authService{
		cfg: cfg,
		ar:  ar,
		li:  li,
	}
}

// LinkedInCallback completes the OAuth grant and upserts the account keyed by the
// LinkedIn subject id. A reconnect refreshes tokens and profile but keeps the schedule.
func (s *authService) LinkedInCallback(ctx context.Context, code string) (int64, error) {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return 0, err
	}

	token, userInfo, err := s.li.ExchangeCode(ctx, code)
	if err != nil {
		return 0, err
	}

	creds, err := encryptToken(token, []byte(s.cfg.SecretKey))
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	creds.LinkedInID = userInfo.Sub
	creds.Profile = models.Profile{
		Name:    userInfo.Name,
		Email:   userInfo.Email,
		Picture: userInfo.Picture,
	}

	existing, isExist, err := s.ar.GetByLinkedInID(ctx, userInfo.Sub)
	if err != nil {
		return 0, err
	}

	if isExist {
		creds.ID = existing.ID
		if err := s.ar.UpdateCredentials(ctx, creds); err != nil {
			return 0, err
		}
		slog.Info("linkedin account reconnected", "account_id", existing.ID)
		return existing.ID, nil
	}

	creds.Schedule = models.DefaultSchedule()
	id, err := s.ar.Create(ctx, creds)
	if err != nil {
		return 0, err
	}

	slog.Info("linkedin account connected", "account_id", id)
	return id, nil
}

func (s *authService) Status(ctx context.Context, accountID int64) (*transfer.ConnectionStatus, error) {
	if accountID == 0 {
		return &transfer.ConnectionStatus{Connected: false}, nil
	}

	acc, isExist, err := s.ar.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !isExist || acc.AccessToken == "" {
		return &transfer.ConnectionStatus{Connected: false}, nil
	}

	return &transfer.ConnectionStatus{
		Connected: true,
		User: &transfer.StatusUser{
			Name:    acc.Profile.Name,
			Email:   acc.Profile.Email,
			Picture: acc.Profile.Picture,
		},
		Schedule: &transfer.ScheduleInfo{
			Time:     acc.Schedule.Time,
			Timezone: acc.Schedule.Timezone,
			Enabled:  acc.Schedule.Enabled,
		},
	}, nil
}

// LiveProfile fetches the profile from LinkedIn with the stored token, which checks the token still works.
func (s *authService) LiveProfile(ctx context.Context, accountID int64) (*transfer.LinkedInUserInfo, error) {
	acc, isExist, err := s.ar.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, ErrAccountNotFound
	}
	if acc.AccessToken == "" {
		return nil, ErrNotConnected
	}

	return s.li.UserInfo(ctx, acc)
}
