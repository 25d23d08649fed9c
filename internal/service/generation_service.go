package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/repository"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

const noAccountsMessage = "No accounts to process"

// GenerationService runs one generate-and-publish pass over the candidate accounts.
type GenerationService interface {
	Run(ctx context.Context, trigger transfer.Trigger) (*transfer.RunResult, error)
}

type generationService struct {
	ar  repository.AccountRepository
	pr  repository.PostRepository
	cs  ContentService
	pub Publisher
	now func() time.Time
}

func NewGenerationService(ar repository.AccountRepository, pr repository.PostRepository, cs ContentService, pub Publisher) GenerationService {
	return &generationService{
		ar:  ar,
		pr:  pr,
		cs:  cs,
		pub: pub,
		now: time.Now,
	}
}

func (s *generationService) Run(ctx context.Context, trigger transfer.Trigger) (*transfer.RunResult, error) {
	runID := uuid.NewString()

	ctx, span := otel.Tracer("generation-service").Start(ctx, "generation.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", runID),
		attribute.Int64("run.account_id", trigger.AccountID),
	)

	now := s.now()
	occasion := ResolveOccasion(now)

	accounts, err := s.ar.ListEnabled(ctx, trigger.AccountID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "listing accounts")
		slog.Error("generation run aborted", "run_id", runID, "error", err)
		return nil, fmt.Errorf("listing eligible accounts: %w", err)
	}

	result := &transfer.RunResult{
		Success:   true,
		RunID:     runID,
		Occasion:  occasion,
		Results:   []transfer.AccountOutcome{},
		Timestamp: now,
	}

	for _, acc := range accounts {
		if !isDue(acc, trigger.DueAt) {
			continue
		}
		result.Results = append(result.Results, s.processAccount(ctx, acc, occasion))
	}

	if len(result.Results) == 0 {
		result.Message = noAccountsMessage
	}

	span.SetAttributes(
		attribute.Int("run.accounts", len(result.Results)),
		attribute.Int("run.posted", result.Succeeded()),
	)
	slog.Info("generation run finished",
		"run_id", runID,
		"occasion", occasion,
		"accounts", len(result.Results),
		"posted", result.Succeeded(),
	)

	return result, nil
}

// processAccount never returns an error: every failure, panics included, becomes a failed outcome.
func (s *generationService) processAccount(ctx context.Context, acc *models.Account, occasion string) (outcome transfer.AccountOutcome) {
	outcome = transfer.AccountOutcome{
		AccountID:   acc.ID,
		AccountName: acc.Profile.Name,
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("account processing panicked", "account_id", acc.ID, "panic", r)
			outcome.Success = false
			outcome.Error = fmt.Sprintf("unexpected error: %v", r)
		}
	}()

	caption := s.cs.GenerateCaption(ctx, occasion)
	imagePrompt := s.cs.GenerateImagePrompt(ctx, occasion)

	post := &models.Post{
		AccountID:    acc.ID,
		Occasion:     occasion,
		Caption:      caption,
		ImageURL:     PlaceholderImageURL(occasion),
		ImagePrompt:  imagePrompt,
		Status:       models.PostStatusGenerated,
		ScheduledFor: s.now(),
	}

	if _, err := s.pr.Create(ctx, post); err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	outcome.PostID = post.ID

	linkedInPostID, err := s.pub.Publish(ctx, acc, caption, "")
	if err == nil && linkedInPostID == "" {
		err = errors.New("publisher returned an empty post id")
	}
	if err != nil {
		post.MarkFailed(PublishErrorMessage(err))
		slog.Warn("publish failed", "account_id", acc.ID, "post_id", post.ID, "error", post.Error)
	} else {
		post.MarkPosted(linkedInPostID, s.now())
	}

	if err := s.pr.Update(ctx, post); err != nil {
		outcome.Status = post.Status
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Status = post.Status
	outcome.Success = post.Status == models.PostStatusPosted
	if !outcome.Success {
		outcome.Error = post.Error
	}
	return outcome
}

// isDue reports whether the account's scheduled local time falls in the hour starting at dueAt.
// time.Date resolves a repeated wall time to one instant and moves a skipped one forward,
// so each local day yields exactly one due hour. A zero dueAt matches every account.
func isDue(acc *models.Account, dueAt time.Time) bool {
	if dueAt.IsZero() {
		return true
	}

	loc, err := time.LoadLocation(acc.Schedule.Timezone)
	if err != nil {
		loc = time.UTC
	}

	at, err := time.Parse("15:04", acc.Schedule.Time)
	if err != nil {
		slog.Warn("unparseable schedule time", "account_id", acc.ID, "time", acc.Schedule.Time)
		return false
	}

	end := dueAt.Add(time.Hour)
	// The window can cross local midnight in zones with non-hour offsets.
	for _, day := range []time.Time{dueAt.In(loc), end.Add(-time.Nanosecond).In(loc)} {
		y, m, d := day.Date()
		scheduled := time.Date(y, m, d, at.Hour(), at.Minute(), 0, 0, loc)
		if !scheduled.Before(dueAt) && scheduled.Before(end) {
			return true
		}
	}
	return false
}
