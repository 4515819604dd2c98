package chat

import (
	"time"

	"capbot/internal/payroll"
)

type ChatMessage struct {
	Role      string     `json:"role" binding:"required,oneof=user assistant"`
	Content   string     `json:"content" binding:"required"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type ChatRequest struct {
	Message             string        `json:"message" binding:"required"`
	ConversationHistory []ChatMessage `json:"conversation_history" binding:"omitempty,dive"`
}

type ChatResponse struct {
	Message   string             `json:"message"`
	Evidence  []payroll.Evidence `json:"evidence,omitempty"`
	Sources   []string           `json:"sources,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
