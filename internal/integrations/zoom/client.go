package zoom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/timenest/timenest-api/internal/domain"
)

const (
	DefaultAuthURL    = "https://zoom.us/oauth/authorize"
	DefaultTokenURL   = "https://zoom.us/oauth/token"
	DefaultAPIBaseURL = "https://api.zoom.us/v2"
)

// Config настройки OAuth-приложения Zoom
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	APIBaseURL   string
	Timeout      time.Duration
}

// Client клиент Zoom API
// Обмен кода и обновление токенов выполняет golang.org/x/oauth2 (Basic-авторизация клиента)
type Client struct {
	oauth      *oauth2.Config
	apiBaseURL string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Zoom
func NewClient(cfg Config, log Logger) *Client {
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	apiBaseURL := cfg.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = DefaultAPIBaseURL
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		apiBaseURL: strings.TrimRight(apiBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// Configured возвращает true, если заданы учетные данные приложения
func (c *Client) Configured() bool {
	return c.oauth.ClientID != "" && c.oauth.ClientSecret != ""
}

// AuthCodeURL возвращает адрес страницы авторизации Zoom
// state вернется в callback без изменений
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange обменивает код авторизации на токены пользователя
func (c *Client) Exchange(ctx context.Context, userID, code string) (*domain.MeetingToken, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	token, err := c.oauth.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	return toDomainToken(userID, token), nil
}

// CreateMeeting создает запланированную встречу от имени пользователя
// Просроченный access token обновляется по refresh token; обновленные токены
// возвращаются вторым значением, чтобы вызывающий их сохранил (nil, если не менялись)
func (c *Client) CreateMeeting(
	ctx context.Context,
	token *domain.MeetingToken,
	topic string,
	startTime time.Time,
) (*domain.Meeting, *domain.MeetingToken, error) {
	if !c.Configured() {
		return nil, nil, ErrNotConfigured
	}

	source := c.oauth.TokenSource(c.oauthContext(ctx), &oauth2.Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       token.ExpiresAt,
	})

	current, err := source.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to refresh token: %v", ErrUnauthorized, err)
	}

	var refreshed *domain.MeetingToken
	if current.AccessToken != token.AccessToken {
		refreshed = toDomainToken(token.UserID, current)
		c.log.Info("Zoom access token refreshed for user_id=%s", token.UserID)
	}

	body, err := json.Marshal(createMeetingRequest{
		Topic:     topic,
		Type:      MeetingTypeScheduled,
		StartTime: startTime.UTC().Format(startTimeLayout),
		Timezone:  "UTC",
	})
	if err != nil {
		return nil, refreshed, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	url := c.apiBaseURL + "/users/me/meetings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, refreshed, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	current.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, refreshed, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized:
		return nil, refreshed, fmt.Errorf("%w: %s", ErrUnauthorized, readError(resp.Body))
	default:
		return nil, refreshed, fmt.Errorf("%w: unexpected status code %d: %s",
			ErrInvalidResponse, resp.StatusCode, readError(resp.Body))
	}

	// Парсим ответ
	var meeting meetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&meeting); err != nil {
		return nil, refreshed, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if meeting.JoinURL == "" {
		return nil, refreshed, fmt.Errorf("%w: empty join_url", ErrInvalidResponse)
	}

	result := &domain.Meeting{
		ID:        meeting.ID,
		Topic:     meeting.Topic,
		StartTime: startTime,
		JoinURL:   meeting.JoinURL,
		StartURL:  meeting.StartURL,
	}
	if parsed, err := time.Parse(time.RFC3339, meeting.StartTime); err == nil {
		result.StartTime = parsed
	}

	return result, refreshed, nil
}

// oauthContext передает http-клиент с таймаутом в golang.org/x/oauth2
func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

func toDomainToken(userID string, token *oauth2.Token) *domain.MeetingToken {
	return &domain.MeetingToken{
		UserID:       userID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}
}

func readError(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))

	var apiErr ErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Sprintf("code=%d message=%s", apiErr.Code, apiErr.Message)
	}
	return string(raw)
}

// IsUpstreamError возвращает true для ошибок взаимодействия с Zoom
func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrExchangeFailed) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidResponse) ||
		errors.Is(err, ErrInternal)
}
