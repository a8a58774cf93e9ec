package folio

// ContactRequest is a visitor's contact form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// ContactResponse is returned when a submission was relayed.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse reports liveness and process uptime in seconds.
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// KeepaliveResponse acknowledges a keepalive ping.
type KeepaliveResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
