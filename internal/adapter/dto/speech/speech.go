package speech

// ToTextRequest carries base64 encoded audio
type ToTextRequest struct {
	SessionID string `json:"sessionId"`
	AudioData string `json:"audioData" validate:"required,base64"`
}

// ToTextResponse carries the transcription
type ToTextResponse struct {
	Text string `json:"text"`
}

// ToSpeechRequest carries the text to synthesize
type ToSpeechRequest struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text" validate:"required,max=4000"`
}

// ToSpeechResponse carries base64 encoded audio
type ToSpeechResponse struct {
	AudioData string `json:"audioData"`
}
