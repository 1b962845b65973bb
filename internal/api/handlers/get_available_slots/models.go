package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/timenest/timenest-api/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	UserID string         `json:"userId"`
	Slots  []SlotResponse `json:"slots"`
}

// SlotResponse свободный слот
type SlotResponse struct {
	StartsAt     string `json:"startsAt"` // RFC3339, UTC
	DisplayLabel string `json:"displayLabel"`
}

// ToUseCaseRequest конвертирует параметры пути в модель use case
func ToUseCaseRequest(ownerID string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{OwnerID: ownerID}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		UserID: resp.OwnerID,
		Slots:  make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartsAt:     s.StartsAt.UTC().Format(time.RFC3339),
			DisplayLabel: s.DisplayLabel,
		})
	}
	return out
}
