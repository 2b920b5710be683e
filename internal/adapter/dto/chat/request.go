package chat

// TranscriptRequest carries a transcript posted as JSON
type TranscriptRequest struct {
	Text string `json:"text" validate:"required"`
	Name string `json:"name,omitempty" validate:"omitempty,max=200"`
}

// AudioRequest points at a recording the transcriber can fetch
type AudioRequest struct {
	AudioURL string `json:"audio_url" validate:"required,url"`
}

// MessageRequest is one conversational turn
type MessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// HistoryQuery pages through archived analyses
type HistoryQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}
