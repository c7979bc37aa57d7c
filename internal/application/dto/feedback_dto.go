package dto

import "time"

// CreateFeedbackRequest mensaje de soporte enviado desde la UI.
type CreateFeedbackRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// FeedbackResponse representación HTTP de un mensaje de feedback.
type FeedbackResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
