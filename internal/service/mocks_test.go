package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/transfer"
	"golang.org/x/oauth2"
)

type mockAccountRepo struct {
	createFn            func(ctx context.Context, acc *models.Account) (int64, error)
	getByIDFn           func(ctx context.Context, id int64) (*models.Account, bool, error)
	getByLinkedInIDFn   func(ctx context.Context, linkedInID string) (*models.Account, bool, error)
	updateCredentialsFn func(ctx context.Context, acc *models.Account) error
	listEnabledFn       func(ctx context.Context, accountID int64) ([]*models.Account, error)
	listExpiringFn      func(ctx context.Context, before time.Time) ([]*models.Account, error)
	setTokenFn          func(ctx context.Context, id int64, old string, acc *models.Account) error
	updateScheduleFn    func(ctx context.Context, id int64, schedule models.Schedule) error
}

func (m *mockAccountRepo) Create(ctx context.Context, acc *models.Account) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, acc)
	}
	return 1, nil
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id int64) (*models.Account, bool, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, false, nil
}

func (m *mockAccountRepo) GetByLinkedInID(ctx context.Context, linkedInID string) (*models.Account, bool, error) {
	if m.getByLinkedInIDFn != nil {
		return m.getByLinkedInIDFn(ctx, linkedInID)
	}
	return nil, false, nil
}

func (m *mockAccountRepo) UpdateCredentials(ctx context.Context, acc *models.Account) error {
	if m.updateCredentialsFn != nil {
		return m.updateCredentialsFn(ctx, acc)
	}
	return nil
}

func (m *mockAccountRepo) ListEnabled(ctx context.Context, accountID int64) ([]*models.Account, error) {
	if m.listEnabledFn != nil {
		return m.listEnabledFn(ctx, accountID)
	}
	return nil, nil
}

func (m *mockAccountRepo) ListExpiring(ctx context.Context, before time.Time) ([]*models.Account, error) {
	if m.listExpiringFn != nil {
		return m.listExpiringFn(ctx, before)
	}
	return nil, nil
}

func (m *mockAccountRepo) SetToken(ctx context.Context, id int64, old string, acc *models.Account) error {
	if m.setTokenFn != nil {
		return m.setTokenFn(ctx, id, old, acc)
	}
	return nil
}

func (m *mockAccountRepo) UpdateSchedule(ctx context.Context, id int64, schedule models.Schedule) error {
	if m.updateScheduleFn != nil {
		return m.updateScheduleFn(ctx, id, schedule)
	}
	return nil
}

// memoryPostRepo keeps posts in memory and records every write.
type memoryPostRepo struct {
	mu        sync.Mutex
	posts     map[int64]*models.Post
	nextID    int64
	creates   int
	updates   int
	createErr error
	updateErr error
}

func newMemoryPostRepo() *memoryPostRepo {
	return &memoryPostRepo{posts: map[int64]*models.Post{}}
}

func (m *memoryPostRepo) Create(ctx context.Context, post *models.Post) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	m.creates++
	post.ID = m.nextID
	if post.Status == "" {
		post.Status = models.PostStatusGenerated
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	cp := *post
	m.posts[post.ID] = &cp
	return post.ID, nil
}

func (m *memoryPostRepo) GetByID(ctx context.Context, id int64) (*models.Post, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, false, nil
	}
	cp := *p
	return &cp, true, nil
}

func (m *memoryPostRepo) Update(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates++
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *memoryPostRepo) ListByAccountBetween(ctx context.Context, accountID int64, from, to time.Time) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Post
	for _, p := range m.posts {
		if p.AccountID == accountID && !p.CreatedAt.Before(from) && p.CreatedAt.Before(to) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type mockPublisher struct {
	mu        sync.Mutex
	publishFn func(ctx context.Context, acc *models.Account, caption, imageURL string) (string, error)
	calls     []int64
}

func (m *mockPublisher) Publish(ctx context.Context, acc *models.Account, caption, imageURL string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, acc.ID)
	m.mu.Unlock()
	if m.publishFn != nil {
		return m.publishFn(ctx, acc, caption, imageURL)
	}
	return "urn:li:share:1", nil
}

type mockLinkedIn struct {
	mockPublisher
	exchangeFn func(ctx context.Context, code string) (*oauth2.Token, *transfer.LinkedInUserInfo, error)
	userInfoFn func(ctx context.Context, acc *models.Account) (*transfer.LinkedInUserInfo, error)
	refreshFn  func(ctx context.Context, acc *models.Account) error
}

func (m *mockLinkedIn) AuthURL(state string) string {
	return "https://linkedin.example/auth?state=" + state
}

func (m *mockLinkedIn) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, *transfer.LinkedInUserInfo, error) {
	return m.exchangeFn(ctx, code)
}

func (m *mockLinkedIn) UserInfo(ctx context.Context, acc *models.Account) (*transfer.LinkedInUserInfo, error) {
	return m.userInfoFn(ctx, acc)
}

func (m *mockLinkedIn) RefreshToken(ctx context.Context, acc *models.Account) error {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, acc)
	}
	return nil
}

type stubContent struct {
	caption string
	prompt  string
}

func (s stubContent) GenerateCaption(ctx context.Context, occasion string) string {
	if s.caption == "" {
		return "Caption for " + occasion
	}
	return s.caption
}

func (s stubContent) GenerateImagePrompt(ctx context.Context, occasion string) string {
	if s.prompt == "" {
		return "Prompt for " + occasion
	}
	return s.prompt
}
