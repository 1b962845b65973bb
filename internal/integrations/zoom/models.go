package zoom

// MeetingTypeScheduled запланированная встреча (type=2 в Zoom API)
const MeetingTypeScheduled = 2

// startTimeLayout формат start_time в Zoom API (UTC)
const startTimeLayout = "2006-01-02T15:04:05Z"

// createMeetingRequest тело запроса POST /users/me/meetings
type createMeetingRequest struct {
	Topic     string `json:"topic"`
	Type      int    `json:"type"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
}

// meetingResponse ответ Zoom API на создание встречи
type meetingResponse struct {
	ID        int64  `json:"id"`
	Topic     string `json:"topic"`
	StartTime string `json:"start_time"`
	JoinURL   string `json:"join_url"`
	StartURL  string `json:"start_url"`
}

// ErrorResponse модель ошибки Zoom API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
