package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/repository"
	"github.com/maheshrc27/postpilot/internal/transfer"
	"github.com/maheshrc27/postpilot/pkg/utils"
)

var linkedInScopes = []string{"openid", "profile", "email", "w_member_social"}

// Publisher publishes a text (optionally image) update for an account and returns
// the provider's post id.
type Publisher interface {
	Publish(ctx context.Context, acc *models.Account, caption, imageURL string) (string, error)
}

type LinkedInService interface {
	Publisher
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, *transfer.LinkedInUserInfo, error)
	UserInfo(ctx context.Context, acc *models.Account) (*transfer.LinkedInUserInfo, error)
	RefreshToken(ctx context.Context, acc *models.Account) error
}

type linkedInService struct {
	cfg        config.Config
	oauth      *oauth2.Config
	ar         repository.AccountRepository
	httpClient *http.Client
}

func NewLinkedInService(cfg config.Config, ar repository.AccountRepository) LinkedInService {
	return &linkedInService{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.LinkedIn.ClientID,
			ClientSecret: cfg.LinkedIn.ClientSecret,
			RedirectURL:  cfg.LinkedIn.RedirectURI,
			Scopes:       linkedInScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.LinkedIn.AuthURL,
				TokenURL:  cfg.LinkedIn.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		ar:         ar,
		httpClient: &http.Client{},
	}
}

func (s *linkedInService) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

func (s *linkedInService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, *transfer.LinkedInUserInfo, error) {
	if code == "" {
		err := errors.New("authorization code is empty")
		slog.Info(err.Error())
		return nil, nil, err
	}

	if s.oauth.ClientID == "" || s.oauth.ClientSecret == "" || s.oauth.RedirectURL == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return nil, nil, err
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return nil, nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	userInfo, err := s.fetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, nil, err
	}

	if userInfo.Sub == "" {
		return nil, nil, errors.New("linkedin profile has no subject id")
	}

	return token, userInfo, nil
}

func (s *linkedInService) UserInfo(ctx context.Context, acc *models.Account) (*transfer.LinkedInUserInfo, error) {
	accessToken, err := utils.Decrypt(acc.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("decrypting access token: %w", err)
	}
	return s.fetchUserInfo(ctx, accessToken)
}

func (s *linkedInService) fetchUserInfo(ctx context.Context, accessToken string) (*transfer.LinkedInUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.LinkedIn.APIURL+"/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error fetching user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeLinkedInError(resp)
	}

	var userInfo transfer.LinkedInUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error decoding user info: %w", err)
	}

	return &userInfo, nil
}

func (s *linkedInService) Publish(ctx context.Context, acc *models.Account, caption, imageURL string) (string, error) {
	if acc == nil {
		return "", ErrAccountNotFound
	}

	accessToken, err := utils.Decrypt(acc.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("decrypting access token: %w", err)
	}

	payload, err := json.Marshal(newUGCPost(acc.LinkedInID, caption, imageURL))
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.LinkedIn.APIURL+"/v2/ugcPosts", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("posting to linkedin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", decodeLinkedInError(resp)
	}

	var created transfer.UGCPostResponse
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &created); err != nil {
			slog.Info(err.Error())
		}
	}
	if created.ID == "" {
		created.ID = resp.Header.Get("X-RestLi-Id")
	}
	if created.ID == "" {
		return "", errors.New("linkedin response did not include a post id")
	}

	return created.ID, nil
}

func newUGCPost(linkedInID, caption, imageURL string) transfer.UGCPost {
	content := transfer.UGCShareContent{
		ShareCommentary:    transfer.UGCText{Text: caption},
		ShareMediaCategory: "NONE",
	}
	if imageURL != "" {
		content.ShareMediaCategory = "IMAGE"
		content.Media = []transfer.UGCMedia{{Status: "READY", OriginalURL: imageURL}}
	}

	return transfer.UGCPost{
		Author:          "urn:li:person:" + linkedInID,
		LifecycleState:  "PUBLISHED",
		SpecificContent: transfer.UGCSpecificContent{ShareContent: content},
		Visibility:      transfer.UGCVisibility{MemberNetworkVisibility: "PUBLIC"},
	}
}

// decodeLinkedInError turns a non-2xx response into a *transfer.LinkedInError.
func decodeLinkedInError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &transfer.LinkedInError{}
	if err := json.Unmarshal(body, apiErr); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Status == 0 {
		apiErr.Status = resp.StatusCode
	}

	slog.Info("linkedin api error", "status", apiErr.Status, "message", apiErr.Message)
	return apiErr
}

// PublishErrorMessage prefers the provider's message over the transport error text.
func PublishErrorMessage(err error) string {
	var apiErr *transfer.LinkedInError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

func (s *linkedInService) RefreshToken(ctx context.Context, acc *models.Account) error {
	refreshToken, err := utils.Decrypt(acc.RefreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	token, err := s.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	updated, err := encryptToken(token, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	return s.ar.SetToken(ctx, acc.ID, acc.AccessToken, updated)
}

// encryptToken maps an OAuth token onto the encrypted credential fields of an account.
func encryptToken(token *oauth2.Token, key []byte) (*models.Account, error) {
	accessToken, err := utils.Encrypt([]byte(token.AccessToken), key)
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.EncryptOptional(token.RefreshToken, key)
	if err != nil {
		return nil, err
	}

	acc := &models.Account{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry.UTC().Truncate(time.Second)
		acc.TokenExpiresAt = &expiry
	}
	return acc, nil
}
