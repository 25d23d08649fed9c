package service

import (
	"context"
	"errors"

	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/repository"
)

// ScheduleService stores time and timezone verbatim; neither is validated.
type ScheduleService interface {
	GetSchedule(ctx context.Context, accountID int64) (*models.Schedule, error)
	SetSchedule(ctx context.Context, accountID int64, schedule models.Schedule) (*models.Schedule, error)
}

type scheduleService struct {
	ar repository.AccountRepository
}

func NewScheduleService(ar repository.AccountRepository) ScheduleService {
	return &scheduleService{ar: ar}
}

func (s *scheduleService) GetSchedule(ctx context.Context, accountID int64) (*models.Schedule, error) {
	acc, isExist, err := s.ar.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, ErrAccountNotFound
	}

	schedule := acc.Schedule
	return &schedule, nil
}

func (s *scheduleService) SetSchedule(ctx context.Context, accountID int64, schedule models.Schedule) (*models.Schedule, error) {
	err := s.ar.UpdateSchedule(ctx, accountID, schedule)
	if err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return &schedule, nil
}
