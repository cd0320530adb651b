package models

// ProcessChatRequest asks the chat processor to answer one user
// message in the context of an existing chat.
type ProcessChatRequest struct {
	ChatID          string                 `json:"chat_id" binding:"required"`
	UserID          string                 `json:"user_id" binding:"required"`
	Message         string                 `json:"message" binding:"required"`
	ChatSettings    map[string]interface{} `json:"chat_settings"`
	ContextMessages []ChatMessage          `json:"context_messages"`
}

type ProcessChatResponse struct {
	ChatID         string  `json:"chat_id"`
	MessageID      string  `json:"message_id"`
	AIResponse     string  `json:"ai_response"`
	ProcessingTime float64 `json:"processing_time"`
	TokensUsed     int     `json:"tokens_used"`
	ModelUsed      string  `json:"model_used"`
}

// ExtractResponse carries extracted document text; Text is null when
// the document yielded nothing.
type ExtractResponse struct {
	Text *string `json:"text"`
}
