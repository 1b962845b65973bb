package models

import (
	"time"

	"github.com/timenest/timenest-api/internal/domain"
)

// RuleResponse правило доступности
// Время отдается так, как хранится ("HH:MM:SS")
type RuleResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	DayOfWeek  int       `json:"dayOfWeek"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	ValidFrom  string    `json:"validFrom"`
	ValidUntil string    `json:"validUntil"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RuleListResponse список правил пользователя
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
	Total int            `json:"total"`
}

// FromDomainRecord конвертирует запись хранилища в ответ
func FromDomainRecord(r *domain.AvailabilityRecord) RuleResponse {
	return RuleResponse{
		ID:         r.ID,
		UserID:     r.OwnerID,
		DayOfWeek:  r.DayOfWeek,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		ValidFrom:  r.ValidFrom.String(),
		ValidUntil: r.ValidUntil.String(),
		CreatedAt:  r.CreatedAt,
	}
}

// FromDomainRule конвертирует правило в ответ
func FromDomainRule(r *domain.AvailabilityRule) RuleResponse {
	return RuleResponse{
		ID:         r.ID,
		UserID:     r.OwnerID,
		DayOfWeek:  r.DayOfWeek,
		StartTime:  r.StartTime.String(),
		EndTime:    r.EndTime.String(),
		ValidFrom:  r.ValidFrom.String(),
		ValidUntil: r.ValidUntil.String(),
		CreatedAt:  r.CreatedAt,
	}
}

// FromDomainRecordList конвертирует список записей
func FromDomainRecordList(records []*domain.AvailabilityRecord) *RuleListResponse {
	resp := &RuleListResponse{
		Rules: make([]RuleResponse, 0, len(records)),
		Total: len(records),
	}
	for _, r := range records {
		resp.Rules = append(resp.Rules, FromDomainRecord(r))
	}
	return resp
}
