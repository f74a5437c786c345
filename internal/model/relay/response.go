package relay

// StatusSuccess marks a successful generation.
const StatusSuccess = "success"

// ReadyStatus is returned by the readiness endpoint.
const ReadyStatus = "Captain Jack is ready to help!"

// MessageResponse is the success body of POST /message.
type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ErrorResponse is the failure body of POST /message.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Reply is the provider output for one request.
type Reply struct {
	ID           string
	Content      string
	ScenarioKey  string
	FinishReason string
}
