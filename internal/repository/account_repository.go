package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/maheshrc27/postpilot/internal/models"
)

// AccountRepository persists connected LinkedIn identities. linkedin_id is unique.
type AccountRepository interface {
	Create(ctx context.Context, acc *models.Account) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Account, bool, error)
	GetByLinkedInID(ctx context.Context, linkedInID string) (*models.Account, bool, error)
	UpdateCredentials(ctx context.Context, acc *models.Account) error
	ListEnabled(ctx context.Context, accountID int64) ([]*models.Account, error)
	ListExpiring(ctx context.Context, before time.Time) ([]*models.Account, error)
	SetToken(ctx context.Context, id int64, oldAccessToken string, acc *models.Account) error
	UpdateSchedule(ctx context.Context, id int64, schedule models.Schedule) error
}

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `
	id,
	linkedin_id,
	access_token,
	refresh_token,
	token_expires_at,
	name,
	email,
	picture,
	schedule_time,
	schedule_timezone,
	schedule_enabled,
	plan,
	posts_per_day,
	created_at,
	updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var acc models.Account
	err := row.Scan(
		&acc.ID,
		&acc.LinkedInID,
		&acc.AccessToken,
		&acc.RefreshToken,
		&acc.TokenExpiresAt,
		&acc.Profile.Name,
		&acc.Profile.Email,
		&acc.Profile.Picture,
		&acc.Schedule.Time,
		&acc.Schedule.Timezone,
		&acc.Schedule.Enabled,
		&acc.Subscription.Plan,
		&acc.Subscription.PostsPerDay,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *accountRepository) Create(ctx context.Context, acc *models.Account) (int64, error) {
	query := `
		INSERT INTO accounts(
			linkedin_id,
			access_token,
			refresh_token,
			token_expires_at,
			name,
			email,
			picture,
			schedule_time,
			schedule_timezone,
			schedule_enabled
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	schedule := acc.Schedule
	if schedule.Time == "" && schedule.Timezone == "" {
		schedule = models.DefaultSchedule()
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		acc.LinkedInID,
		acc.AccessToken,
		acc.RefreshToken,
		acc.TokenExpiresAt,
		acc.Profile.Name,
		acc.Profile.Email,
		acc.Profile.Picture,
		schedule.Time,
		schedule.Timezone,
		schedule.Enabled,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*models.Account, bool, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return acc, true, nil
}

func (r *accountRepository) GetByLinkedInID(ctx context.Context, linkedInID string) (*models.Account, bool, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE linkedin_id = $1`

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, linkedInID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return acc, true, nil
}

// UpdateCredentials refreshes tokens and profile fields after a new OAuth grant.
// Schedule and subscription are left untouched.
func (r *accountRepository) UpdateCredentials(ctx context.Context, acc *models.Account) error {
	query := `
		UPDATE accounts
		SET
			access_token = $1,
			refresh_token = $2,
			token_expires_at = $3,
			name = $4,
			email = $5,
			picture = $6,
			updated_at = $7
		WHERE id = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		acc.AccessToken,
		acc.RefreshToken,
		acc.TokenExpiresAt,
		acc.Profile.Name,
		acc.Profile.Email,
		acc.Profile.Picture,
		time.Now(),
		acc.ID,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return expectOneRow(result)
}

// ListEnabled returns accounts with an enabled schedule. A non-zero accountID narrows
// the result to that account, which is still subject to the enabled filter.
func (r *accountRepository) ListEnabled(ctx context.Context, accountID int64) ([]*models.Account, error) {
	query, args := listEnabledQuery(accountID)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return accounts, nil
}

func listEnabledQuery(accountID int64) (string, []interface{}) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE schedule_enabled = TRUE`
	args := []interface{}{}

	if accountID != 0 {
		query += ` AND id = $1`
		args = append(args, accountID)
	}
	query += ` ORDER BY id`

	return query, args
}

// ListExpiring returns accounts holding a refresh token whose access token expires before the given time.
func (r *accountRepository) ListExpiring(ctx context.Context, before time.Time) ([]*models.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE refresh_token <> ''
		AND token_expires_at IS NOT NULL
		AND token_expires_at < $1`

	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return accounts, nil
}

// SetToken swaps tokens only if the stored access token still matches oldAccessToken,
// so a concurrent OAuth reconnect is not overwritten by a stale refresh.
func (r *accountRepository) SetToken(ctx context.Context, id int64, oldAccessToken string, acc *models.Account) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE accounts
		SET
			access_token = COALESCE(NULLIF($3, ''), access_token),
			refresh_token = COALESCE(NULLIF($4, ''), refresh_token),
			token_expires_at = COALESCE($5, token_expires_at),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND access_token = $2;
	`
	result, err := tx.ExecContext(ctx, query, id, oldAccessToken, acc.AccessToken, acc.RefreshToken, acc.TokenExpiresAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	if err := expectOneRow(result); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *accountRepository) UpdateSchedule(ctx context.Context, id int64, schedule models.Schedule) error {
	query := `
		UPDATE accounts
		SET
			schedule_time = $1,
			schedule_timezone = $2,
			schedule_enabled = $3,
			updated_at = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query, schedule.Time, schedule.Timezone, schedule.Enabled, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if affected != 1 {
		slog.Info("no rows affected; record may not exist", "affected", affected)
		return ErrNoRowsAffected
	}
	return nil
}
