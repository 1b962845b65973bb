package meetings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/timenest/timenest-api/internal/domain"
	tokenRepo "github.com/timenest/timenest-api/internal/infra/storage/meetingtoken"
	"github.com/timenest/timenest-api/internal/integrations/zoom"
	"github.com/timenest/timenest-api/internal/service/meetings/models"
)

// Service сервис видеовстреч: подключение Zoom и создание встреч
type Service struct {
	tokenRepo    TokenRepository
	zoomClient   ZoomClient
	state        stateCodec
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса видеовстреч
// stateSecret подписывает параметр state; пустой секрет передает userID как есть
func NewService(
	tokenRepo TokenRepository,
	zoomClient ZoomClient,
	stateSecret string,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		tokenRepo:    tokenRepo,
		zoomClient:   zoomClient,
		state:        stateCodec{secret: []byte(stateSecret)},
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// AuthURL возвращает адрес страницы авторизации Zoom для пользователя
func (s *Service) AuthURL(ctx context.Context, userID string) (*models.AuthURLResponse, error) {
	if !s.zoomClient.Configured() {
		return nil, ErrNotConfigured
	}

	state, err := s.state.encode(userID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("AuthURL: failed to encode state for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: AuthURL - %v", ErrInternal, err)
	}

	return &models.AuthURLResponse{URL: s.zoomClient.AuthCodeURL(state)}, nil
}

// HandleCallback обменивает код авторизации на токены и сохраняет их за пользователем из state
func (s *Service) HandleCallback(ctx context.Context, code, state string) error {
	if code == "" {
		return fmt.Errorf("%w: missing code", ErrInvalidInput)
	}

	userID, err := s.state.decode(state, s.timeProvider.Now())
	if err != nil {
		s.logger.Warn("HandleCallback: invalid state: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	s.logger.Info("HandleCallback: exchanging code for user=%s", userID)

	token, err := s.zoomClient.Exchange(ctx, userID, code)
	if err != nil {
		if errors.Is(err, zoom.ErrNotConfigured) {
			return ErrNotConfigured
		}
		s.logger.Error("HandleCallback: exchange failed for user=%s: %v", userID, err)
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if err := s.tokenRepo.Upsert(ctx, token); err != nil {
		s.logger.Error("HandleCallback: failed to store tokens for user=%s: %v", userID, err)
		return fmt.Errorf("%w: HandleCallback - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("HandleCallback: Zoom connected for user=%s", userID)
	return nil
}

// CreateMeeting создает встречу Zoom от имени пользователя
// Обновленные при создании токены сохраняются
func (s *Service) CreateMeeting(ctx context.Context, userID, topic string, startTime time.Time) (*models.MeetingResponse, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = domain.DefaultMeetingTopic
	}
	if len(topic) > domain.MaxMeetingTopicLen {
		return nil, fmt.Errorf("%w: topic is longer than %d characters", ErrInvalidInput, domain.MaxMeetingTopicLen)
	}
	if startTime.IsZero() {
		return nil, fmt.Errorf("%w: start_time is required", ErrInvalidInput)
	}

	s.logger.Info("CreateMeeting: creating meeting for user=%s at %s", userID, startTime.UTC().Format(time.RFC3339))

	token, err := s.tokenRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, tokenRepo.ErrTokenNotFound) {
			s.logger.Warn("CreateMeeting: no tokens for user=%s", userID)
			return nil, ErrNoTokens
		}
		s.logger.Error("CreateMeeting: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: CreateMeeting - repository error: %v", ErrInternal, err)
	}

	meeting, refreshed, err := s.zoomClient.CreateMeeting(ctx, token, topic, startTime)

	// Обновленные токены сохраняем даже при ошибке создания встречи:
	// старый refresh token после обновления уже недействителен
	if refreshed != nil {
		if upsertErr := s.tokenRepo.Upsert(ctx, refreshed); upsertErr != nil {
			s.logger.Error("CreateMeeting: failed to store refreshed tokens for user=%s: %v", userID, upsertErr)
		}
	}

	if err != nil {
		if errors.Is(err, zoom.ErrNotConfigured) {
			return nil, ErrNotConfigured
		}
		s.logger.Error("CreateMeeting: zoom error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.logger.Info("CreateMeeting: meeting id=%d created for user=%s", meeting.ID, userID)
	return models.FromDomainMeeting(meeting), nil
}
