// file: service/kakao_client.go

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"go-game-api/common"
	"go-game-api/config"
	"go-game-api/logger"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

// KakaoProfile is the slice of the provider profile this system cares about.
type KakaoProfile struct {
	ID       string
	Nickname string
	Picture  string
}

// IKakaoClient defines the contract for talking to the Kakao OAuth provider.
type IKakaoClient interface {
	GetAccessToken(ctx context.Context, code string) (string, error)
	GetProfile(ctx context.Context, accessToken string) (*KakaoProfile, error)
}

// KakaoClient implements IKakaoClient against the real Kakao endpoints. All
// outbound calls share one timeout-bearing http.Client.
type KakaoClient struct {
	conf       *oauth2.Config
	profileURL string
	httpClient *http.Client
}

func NewKakaoClient() *KakaoClient {
	cfg := config.AppConfig.Kakao
	return &KakaoClient{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		profileURL: cfg.ProfileURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetAccessToken exchanges an authorization code for a provider access
// token. An invalid or expired code surfaces as ErrInvalidCode.
func (c *KakaoClient) GetAccessToken(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.conf.Exchange(ctx, code)
	if err != nil {
		logger.Log.WithError(err).Info("Kakao code exchange failed")
		return "", fmt.Errorf("%w: %s", common.ErrInvalidCode, err)
	}
	return token.AccessToken, nil
}

// GetProfile fetches the Kakao user profile with a provider access token.
func (c *KakaoClient) GetProfile(ctx context.Context, accessToken string) (*KakaoProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.profileURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch Kakao profile")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.WithField("status_code", resp.StatusCode).Error("Kakao profile request rejected")
		return nil, fmt.Errorf("kakao profile request failed with status %d", resp.StatusCode)
	}

	var body struct {
		ID         int64 `json:"id"`
		Properties struct {
			Nickname     string `json:"nickname"`
			ProfileImage string `json:"profile_image"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode kakao profile: %w", err)
	}

	return &KakaoProfile{
		ID:       strconv.FormatInt(body.ID, 10),
		Nickname: body.Properties.Nickname,
		Picture:  body.Properties.ProfileImage,
	}, nil
}
