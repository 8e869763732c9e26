package call

// ProcessRequest carries one user utterance
type ProcessRequest struct {
	SessionID   string `json:"sessionId" validate:"required"`
	UserMessage string `json:"userMessage" validate:"required,max=4000"`
}

// EndRequest ends a call
type EndRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}
