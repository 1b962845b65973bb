package zoom_callback

// CallbackResponse HTTP response model, когда адрес возврата не настроен
type CallbackResponse struct {
	Connected bool `json:"connected"`
}
