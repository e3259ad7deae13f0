package resolve_cancellation

// StatusResponse HTTP response model
type StatusResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}
