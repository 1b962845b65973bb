package create_availability

import (
	"time"

	createAvailability "github.com/timenest/timenest-api/internal/usecase/create_availability"
	"github.com/timenest/timenest-api/pkg/types"
)

// CreateAvailabilityRequest HTTP request model
type CreateAvailabilityRequest struct {
	DaysOfWeek []int   `json:"daysOfWeek" validate:"required,min=1,max=7,dive,min=0,max=6"`
	StartTime  string  `json:"startTime,omitempty"`  // "17:00"
	EndTime    string  `json:"endTime,omitempty"`    // "20:00"
	ValidFrom  *string `json:"validFrom,omitempty"`  // "2024-01-01"
	ValidUntil *string `json:"validUntil,omitempty"` // "2024-03-31"
}

// RuleResponse созданное правило
type RuleResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	DayOfWeek  int    `json:"dayOfWeek"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	ValidFrom  string `json:"validFrom"`
	ValidUntil string `json:"validUntil"`
	CreatedAt  string `json:"createdAt"`
}

// CreateAvailabilityResponse HTTP response model
type CreateAvailabilityResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAvailabilityRequest) ToUseCaseRequest(ownerID string) (*createAvailability.Request, error) {
	req := &createAvailability.Request{
		OwnerID:    ownerID,
		DaysOfWeek: r.DaysOfWeek,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
	}

	if r.ValidFrom != nil {
		d, err := types.ParseDate(*r.ValidFrom)
		if err != nil {
			return nil, err
		}
		req.ValidFrom = &d
	}
	if r.ValidUntil != nil {
		d, err := types.ParseDate(*r.ValidUntil)
		if err != nil {
			return nil, err
		}
		req.ValidUntil = &d
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAvailability.Response) *CreateAvailabilityResponse {
	out := &CreateAvailabilityResponse{Rules: make([]RuleResponse, 0, len(resp.Rules))}
	for _, r := range resp.Rules {
		out.Rules = append(out.Rules, RuleResponse{
			ID:         r.ID,
			UserID:     r.OwnerID,
			DayOfWeek:  r.DayOfWeek,
			StartTime:  r.StartTime.String(),
			EndTime:    r.EndTime.String(),
			ValidFrom:  r.ValidFrom.String(),
			ValidUntil: r.ValidUntil.String(),
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
